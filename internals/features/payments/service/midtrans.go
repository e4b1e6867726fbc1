package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"time"

	"videoach_backend/internals/features/payments/dto"
	"videoach_backend/internals/features/payments/model"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapCreator is the part of snap.Client checkout needs.
type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient builds a Snap client for the sandbox or production environment.
func NewSnapClient(serverKey string, production bool) *snap.Client {
	var c snap.Client
	if production {
		c.New(serverKey, midtrans.Production)
	} else {
		c.New(serverKey, midtrans.Sandbox)
	}
	return &c
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// VerifySignature checks SHA512(order_id + status_code + gross_amount + server key).
func VerifySignature(n dto.MidtransNotification, serverKey string) bool {
	want := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	if want == "" || serverKey == "" {
		return false
	}
	return sha512sum(n.OrderID+n.StatusCode+n.GrossAmount+serverKey) == want
}

// MapStatus converts a Midtrans transaction status. ok is false for statuses that change nothing.
func MapStatus(transactionStatus, fraudStatus string, now time.Time) (status string, paidAt *time.Time, ok bool) {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "accept", "":
			return model.StatusPaid, &now, true
		case "challenge":
			return model.StatusPending, nil, true
		}
		return model.StatusFailed, nil, true
	case "settlement":
		return model.StatusPaid, &now, true
	case "pending":
		return model.StatusPending, nil, true
	case "deny", "failure":
		return model.StatusFailed, nil, true
	case "cancel":
		return model.StatusCancel, nil, true
	case "expire":
		return model.StatusExpired, nil, true
	}
	return "", nil, false
}
