// Package storage keeps donation receipts in S3.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"karma/internal/fees"
	"karma/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the slice of the S3 client receipts need.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Receipt struct {
	DonationID    string    `json:"donationId"`
	TransactionID string    `json:"transactionId"`
	DonorID       string    `json:"donorId"`
	NonprofitID   string    `json:"nonprofitId"`
	NonprofitName string    `json:"nonprofitName"`
	Amount        float64   `json:"amount"`
	PlatformFee   float64   `json:"platformFee"`
	NetAmount     float64   `json:"netAmount"`
	CardLastFour  string    `json:"cardLastFour,omitempty"`
	IssuedAt      time.Time `json:"issuedAt"`
}

func NewReceipt(d *types.Donation, nonprofitName string) Receipt {
	breakdown := fees.Breakdown{
		AmountCents:      d.AmountCents,
		PlatformFeeCents: d.PlatformFeeCents,
		NetCents:         d.NetAmountCents,
	}

	r := Receipt{
		DonationID:    d.ID,
		TransactionID: d.TransactionID,
		DonorID:       d.DonorID,
		NonprofitID:   d.NonprofitID,
		NonprofitName: nonprofitName,
		Amount:        breakdown.Amount(),
		PlatformFee:   breakdown.PlatformFee(),
		NetAmount:     breakdown.NetAmount(),
		IssuedAt:      d.CreatedAt,
	}
	if d.CardLastFour != nil {
		r.CardLastFour = *d.CardLastFour
	}

	return r
}

func ReceiptKey(donorID, donationID string) string {
	return fmt.Sprintf("receipts/%s/%s.json", donorID, donationID)
}

type ReceiptStore struct {
	client ObjectPutter
	bucket string
}

func NewReceiptStore(client ObjectPutter, bucket string) *ReceiptStore {
	return &ReceiptStore{client: client, bucket: bucket}
}

// SaveReceipt uploads a JSON receipt for d and returns its object key. With
// no bucket configured nothing is written and the key is empty.
func (s *ReceiptStore) SaveReceipt(ctx context.Context, d *types.Donation, nonprofitName string) (string, error) {
	if s.bucket == "" || s.client == nil {
		return "", nil
	}

	body, err := json.Marshal(NewReceipt(d, nonprofitName))
	if err != nil {
		return "", fmt.Errorf("failed to encode receipt: %w", err)
	}

	key := ReceiptKey(d.DonorID, d.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt %s: %w", key, err)
	}

	return key, nil
}
