package v1

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
)

var testHeader = []byte("v1.local.")

// RSA generation is slow; share one keypair across the public tests.
var testRSAKey = mustGenerateRSA()

func mustGenerateRSA() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, ModulusBits)
	if err != nil {
		panic(err)
	}
	return key
}

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey(t)

	tests := []struct {
		name    string
		payload []byte
		footer  []byte
	}{
		{"simple", []byte("hello world"), nil},
		{"with footer", []byte("hello"), []byte("kid:1")},
		{"empty payload", []byte{}, nil},
		{"binary payload", []byte{0x00, 0xff, 0x80}, []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Encrypt(key, testHeader, tt.payload, tt.footer)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(body) != NonceSize+len(tt.payload)+MacSize {
				t.Fatalf("body length = %d, want %d", len(body), NonceSize+len(tt.payload)+MacSize)
			}

			got, err := Decrypt(key, testHeader, body, tt.footer)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("Decrypt() = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestEncrypt_Nondeterministic(t *testing.T) {
	key := testKey(t)
	payload := []byte("same payload")

	a, err := Encrypt(key, testHeader, payload, nil)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	b, err := Encrypt(key, testHeader, payload, nil)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same payload produced identical bodies")
	}
}

func TestEncrypt_Deterministic_WithFixedNonce(t *testing.T) {
	key := testKey(t)
	payload := []byte("payload")

	nonce := bytes.Repeat([]byte{0x11}, NonceSize)

	restore := SetRandReaderForTesting(bytes.NewReader(nonce))
	a, err := Encrypt(key, testHeader, payload, nil)
	restore()
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	restore = SetRandReaderForTesting(bytes.NewReader(nonce))
	b, err := Encrypt(key, testHeader, payload, nil)
	restore()
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("same nonce and payload produced different bodies")
	}
	if !bytes.Equal(a[:NonceSize], nonce) {
		t.Errorf("body nonce = %x, want %x", a[:NonceSize], nonce)
	}
}

func TestDeriveKeys_Independent(t *testing.T) {
	key := testKey(t)
	nonce := make([]byte, NonceSize)

	encKey, iv, authKey, err := deriveKeys(key, nonce)
	if err != nil {
		t.Fatalf("deriveKeys() error = %v", err)
	}
	if len(encKey) != KeySize || len(iv) != 16 || len(authKey) != KeySize {
		t.Fatalf("derived sizes = %d/%d/%d, want %d/16/%d", len(encKey), len(iv), len(authKey), KeySize, KeySize)
	}
	if bytes.Equal(encKey, authKey) {
		t.Error("encryption and authentication keys are identical")
	}

	// A different nonce must change every derived value.
	nonce[0] = 1
	encKey2, iv2, authKey2, err := deriveKeys(key, nonce)
	if err != nil {
		t.Fatalf("deriveKeys() error = %v", err)
	}
	if bytes.Equal(encKey, encKey2) || bytes.Equal(iv, iv2) || bytes.Equal(authKey, authKey2) {
		t.Error("nonce change did not propagate into derived keys")
	}
}

func TestDecrypt_Failures(t *testing.T) {
	key := testKey(t)
	footer := []byte("kid:2")
	body, err := Encrypt(key, testHeader, []byte("secret"), footer)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	t.Run("wrong key", func(t *testing.T) {
		other := testKey(t)
		if _, err := Decrypt(other, testHeader, body, footer); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("flipped nonce bit", func(t *testing.T) {
		tampered := bytes.Clone(body)
		tampered[0] ^= 0x01
		if _, err := Decrypt(key, testHeader, tampered, footer); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("flipped ciphertext bit", func(t *testing.T) {
		tampered := bytes.Clone(body)
		tampered[NonceSize] ^= 0x01
		if _, err := Decrypt(key, testHeader, tampered, footer); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("flipped tag bit", func(t *testing.T) {
		tampered := bytes.Clone(body)
		tampered[len(tampered)-1] ^= 0x01
		if _, err := Decrypt(key, testHeader, tampered, footer); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("wrong footer", func(t *testing.T) {
		if _, err := Decrypt(key, testHeader, body, nil); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("body shorter than nonce and tag", func(t *testing.T) {
		if _, err := Decrypt(key, testHeader, body[:NonceSize+MacSize-1], footer); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
		}
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	header := []byte("v1.public.")

	tests := []struct {
		name    string
		payload []byte
		footer  []byte
	}{
		{"simple", []byte("msg"), nil},
		{"with footer", []byte("msg"), []byte("kid:1")},
		{"empty payload", []byte{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Sign(testRSAKey, header, tt.payload, tt.footer)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			if len(body) != len(tt.payload)+SignatureSize {
				t.Fatalf("body length = %d, want %d", len(body), len(tt.payload)+SignatureSize)
			}

			got, err := Verify(&testRSAKey.PublicKey, header, body, tt.footer)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("Verify() = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestVerify_Failures(t *testing.T) {
	header := []byte("v1.public.")
	body, err := Sign(testRSAKey, header, []byte("msg"), nil)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	t.Run("unrelated public key", func(t *testing.T) {
		other := mustGenerateRSA()
		if _, err := Verify(&other.PublicKey, header, body, nil); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Verify() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("flipped payload bit", func(t *testing.T) {
		tampered := bytes.Clone(body)
		tampered[0] ^= 0x01
		if _, err := Verify(&testRSAKey.PublicKey, header, tampered, nil); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Verify() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("flipped signature bit", func(t *testing.T) {
		tampered := bytes.Clone(body)
		tampered[len(tampered)-1] ^= 0x01
		if _, err := Verify(&testRSAKey.PublicKey, header, tampered, nil); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Verify() error = %v, want ErrAuthentication", err)
		}
	})

	t.Run("body shorter than signature", func(t *testing.T) {
		if _, err := Verify(&testRSAKey.PublicKey, header, body[:SignatureSize-1], nil); !errors.Is(err, ErrAuthentication) {
			t.Errorf("Verify() error = %v, want ErrAuthentication", err)
		}
	})
}
