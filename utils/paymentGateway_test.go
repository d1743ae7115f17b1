package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/successfulca300-tech/ca-successfull-sub000/config"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	config.AppConfig = &config.Config{GatewayWebhookSecret: "test-secret"}

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte("order_123|pay_456"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyPaymentSignature("order_123", "pay_456", valid))
	assert.False(t, VerifyPaymentSignature("order_123", "pay_456", "deadbeef"))
	assert.False(t, VerifyPaymentSignature("order_999", "pay_456", valid))
}
