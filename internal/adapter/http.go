package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	folders *httpTable[*models.Folder]
	notes   *httpTable[*models.Note]

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. When appCfg.HashKey is set every request body is signed
// and every signed response is verified.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher: utils.NewHasher(appCfg.HashKey),
		logger: logger,
	}
	h.folders = &httpTable[*models.Folder]{adapter: h, path: "/api/folders", kind: models.KindFolder}
	h.notes = &httpTable[*models.Note]{adapter: h, path: "/api/notes", kind: models.KindNote}

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Folders() RemoteTable[*models.Folder] { return h.folders }

func (h *httpServerAdapter) Notes() RemoteTable[*models.Note] { return h.notes }

// Register implements [ServerAdapter]. It POSTs the credentials to
// /api/user/register and stores the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "register", "/api/user/register", user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// /api/user/login and stores the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "login", "/api/user/login", user)
}

// Refresh implements [ServerAdapter].
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.Token, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Token{}, err
	}

	resp, err := req.Post("/api/user/refresh")
	if err != nil {
		return models.Token{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = h.checkResponse("refresh", resp); err != nil {
		return models.Token{}, err
	}

	return h.storeToken("refresh", resp)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, op, path string, user models.User) (models.Token, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return models.Token{}, fmt.Errorf("%s encode request: %w", op, err)
	}

	resp, err := h.withBody(h.request(ctx), payload, contentTypeJSON).Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("%s request: %w", op, err)
	}
	if err = h.checkResponse(op, resp); err != nil {
		return models.Token{}, err
	}

	return h.storeToken(op, resp)
}

func (h *httpServerAdapter) storeToken(op string, resp *resty.Response) (models.Token, error) {
	raw, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("%s parse bearer token: %w", op, err)
	}

	token, err := utils.ParseUnverifiedToken(raw)
	if err != nil {
		return models.Token{}, fmt.Errorf("%s parse token claims: %w", op, err)
	}

	h.SetToken(raw)
	return token, nil
}

// Ping implements [ServerAdapter]. It GETs /api/health without credentials.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	return mapHTTPError("ping", resp)
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = h.checkResponse("version", resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

// UploadBinary implements [ServerAdapter]. It PUTs the raw content to
// /api/notes/{id}/binary.
func (h *httpServerAdapter) UploadBinary(ctx context.Context, ownerID int64, noteID, contentType string, data []byte) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = contentTypeBinary
	}

	resp, err := h.withBody(req, data, contentType).
		SetPathParam("id", noteID).
		SetQueryParam("user_id", formatOwner(ownerID)).
		Put("/api/notes/{id}/binary")
	if err != nil {
		return fmt.Errorf("upload binary request: %w", err)
	}
	return h.checkResponse("upload binary", resp)
}

// DownloadBinary implements [ServerAdapter].
func (h *httpServerAdapter) DownloadBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, string, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, "", err
	}

	resp, err := req.
		SetPathParam("id", noteID).
		SetQueryParam("user_id", formatOwner(ownerID)).
		Get("/api/notes/{id}/binary")
	if err != nil {
		return nil, "", fmt.Errorf("download binary request: %w", err)
	}
	if err = h.checkResponse("download binary", resp); err != nil {
		return nil, "", err
	}

	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.request(ctx).SetHeader("Authorization", "Bearer "+token), nil
}

// withBody attaches payload and, when a hash key is configured, its
// signature.
func (h *httpServerAdapter) withBody(req *resty.Request, payload []byte, contentType string) *resty.Request {
	req.SetHeader("Content-Type", contentType).SetBody(payload)
	if h.hasher.Enabled() {
		req.SetHeader(utils.HashHeader, h.hasher.SumHex(payload))
	}
	return req
}

// checkResponse maps error statuses and verifies the body signature of a
// successful response when the server sent one.
func (h *httpServerAdapter) checkResponse(op string, resp *resty.Response) error {
	if err := mapHTTPError(op, resp); err != nil {
		h.logger.Debug().
			Str("func", "httpServerAdapter.checkResponse").
			Str("op", op).
			Int("status", resp.StatusCode()).
			Msg("request failed")
		return err
	}

	signature := resp.Header().Get(utils.HashHeader)
	if !h.hasher.Enabled() || signature == "" {
		return nil
	}
	if !h.hasher.Verify(resp.Body(), signature) {
		return fmt.Errorf("%s: %w", op, ErrIntegrity)
	}
	return nil
}

func formatOwner(ownerID int64) string {
	return strconv.FormatInt(ownerID, 10)
}
