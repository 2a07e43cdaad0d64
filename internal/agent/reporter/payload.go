package reporter

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/syslens/syslens-probe/internal/config"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"
)

// payloadEncoder 按安全配置对上报数据先压缩再加密
type payloadEncoder struct {
	security config.SecurityConfig
}

// encode 返回处理后的数据和对应的Content-Type
func (e payloadEncoder) encode(data []byte) ([]byte, string, error) {
	processed := data
	contentType := contentTypeJSON
	var err error

	// 步骤1：压缩
	if e.security.Compression.Enabled {
		processed, err = gzipPayload(processed, e.security.Compression.Level)
		if err != nil {
			return nil, contentType, fmt.Errorf("压缩失败: %w", err)
		}
		contentType = contentTypeBinary
	}

	// 步骤2：加密
	if e.security.Encryption.Enabled && e.security.Encryption.Key != "" {
		processed, err = sealPayload(processed, e.security.Encryption.Key)
		if err != nil {
			return nil, contentType, fmt.Errorf("加密失败: %w", err)
		}
		contentType = contentTypeBinary
	}

	return processed, contentType, nil
}

// gzipPayload gzip压缩，级别不在1-9之间时使用6
func gzipPayload(data []byte, level int) ([]byte, error) {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = 6
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sealPayload AES-256-GCM加密，输出为base64(nonce || ciphertext)
// 密钥不足32字节时补零，超过时截断
func sealPayload(data []byte, key string) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nonce, nonce, data, nil)
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)))
	base64.StdEncoding.Encode(encoded, sealed)
	return encoded, nil
}

// openPayload 解密sealPayload的输出，供接收端和测试使用
func openPayload(data []byte, key string) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(decoded, data)
	if err != nil {
		return nil, err
	}
	decoded = decoded[:n]

	if len(decoded) < gcm.NonceSize() {
		return nil, fmt.Errorf("密文太短")
	}
	nonce, ciphertext := decoded[:gcm.NonceSize()], decoded[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key string) (cipher.AEAD, error) {
	keyBytes := make([]byte, 32)
	copy(keyBytes, key)

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
