package publish

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Registration is the record of a successfully published campaign, handed
// to the tracking collaborator.
type Registration struct {
	CampaignID   string    `json:"campaign_id"`
	CustomerID   string    `json:"customer_id"`
	CampaignType string    `json:"campaign_type"`
	BudgetUSD    float64   `json:"budget_usd"`
	PublishedAt  time.Time `json:"published_at"`
}

// SQSRegistrar publishes registrations to the tracking queue. Strictly
// best-effort: every failure is logged and swallowed, because a publish
// that succeeded upstream must never look failed locally.
type SQSRegistrar struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSRegistrar creates a tracking registrar.
func NewSQSRegistrar(client *sqs.Client, queueURL string) *SQSRegistrar {
	return &SQSRegistrar{client: client, queueURL: queueURL}
}

// Register enqueues the registration asynchronously.
func (r *SQSRegistrar) Register(_ context.Context, reg Registration) {
	body, err := json.Marshal(reg)
	if err != nil {
		log.Printf("[publish.SQSRegistrar] marshal registration: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := r.client.SendMessage(ctx, &sqs.SendMessageInput{
			QueueUrl:    aws.String(r.queueURL),
			MessageBody: aws.String(string(body)),
		})
		if err != nil {
			log.Printf("[publish.SQSRegistrar] registration enqueue failed for campaign %s: %v", reg.CampaignID, err)
		}
	}()
}
