package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"github.com/successfulca300-tech/ca-successfull-sub000/config"

	"github.com/go-resty/resty/v2"
)

// CreatePaymentOrder registers a checkout order with the payment
// gateway and returns the gateway order id. Amount is in rupees; the
// gateway expects paise.
func CreatePaymentOrder(amount uint, receipt string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.GatewayKeyID, config.AppConfig.GatewayKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount * 100,
			"currency": "INR",
			"receipt":  receipt,
		}).
		Post(config.AppConfig.GatewayApiURL + "orders")
	if err != nil {
		log.Printf("Failed to create gateway order: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway order creation failed: %s", resp.String())
		return "", fmt.Errorf("gateway order creation failed, code: %d", resp.StatusCode())
	}

	var orderResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &orderResp); err != nil {
		log.Printf("Failed to parse gateway order response: %v", err)
		return "", err
	}
	if orderResp.ID == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}

	return orderResp.ID, nil
}

// VerifyPaymentSignature checks the HMAC-SHA256 signature the gateway
// sends with a payment confirmation.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.GatewayWebhookSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
