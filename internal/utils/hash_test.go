// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"testing"

	"github.com/MKhiriev/go-note-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "test-secret-key"

func expectedHMAC(key string, data []byte) []byte {
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return h.Sum(nil)
}

func TestHasher_Sum(t *testing.T) {
	h := NewHasher(testHashKey)
	data := []byte("test-data")

	sum1 := h.Sum(data)
	sum2 := h.Sum(data)

	require.NotEmpty(t, sum1)
	assert.True(t, bytes.Equal(sum1, sum2), "hash must be deterministic for the same input")
	assert.Equal(t, expectedHMAC(testHashKey, data), sum1)
}

func TestHasher_WithNotePayload(t *testing.T) {
	h := NewHasher(testHashKey)

	folderID := "0192f0a4-7d2c-7c1e-9b5a-3f1e2d4c5b6a"
	note := models.Note{
		Record:   models.Record{ID: "0192f0a4-7d2c-7c1e-9b5a-3f1e2d4c5b6b", OwnerID: 7},
		FolderID: &folderID,
		Title:    "groceries",
		Content:  "milk, eggs",
	}

	// тело запроса хэшируется целиком, как это делает middleware
	body, err := json.Marshal(note)
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(expectedHMAC(testHashKey, body)), h.SumHex(body))
	assert.True(t, h.Verify(body, h.SumHex(body)))

	tampered := bytes.Replace(body, []byte("milk"), []byte("beer"), 1)
	assert.False(t, h.Verify(tampered, h.SumHex(body)))
}

func TestHasher_VerifyRejectsMalformedSignature(t *testing.T) {
	h := NewHasher(testHashKey)
	assert.False(t, h.Verify([]byte("data"), "not-hex"))
	assert.False(t, h.Verify([]byte("data"), ""))
}

func TestHasher_DifferentKeysAreIndependent(t *testing.T) {
	a := NewHasher("key-a")
	b := NewHasher("key-b")
	data := []byte("same")

	assert.NotEqual(t, a.Sum(data), b.Sum(data))
	assert.Equal(t, expectedHMAC("key-a", data), a.Sum(data))
}

func TestHasher_Enabled(t *testing.T) {
	var nilHasher *Hasher
	assert.False(t, nilHasher.Enabled())
	assert.False(t, NewHasher("").Enabled())
	assert.True(t, NewHasher("k").Enabled())
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher(testHashKey)
	data := []byte("concurrent")
	want := expectedHMAC(testHashKey, data)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if !bytes.Equal(want, h.Sum(data)) {
					t.Error("digest mismatch under concurrent use")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestHashString(t *testing.T) {
	got := HashString("payload", testHashKey)
	assert.Equal(t, hex.EncodeToString(expectedHMAC(testHashKey, []byte("payload"))), got)
	assert.NotEqual(t, got, HashString("payload", "other-key"))
}
