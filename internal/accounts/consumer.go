package accounts

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Consumer long-polls the account-events queue and feeds push events into
// the reconciler. The queue is the subscription channel keyed by user; the
// platform publishes one message per account change.
type Consumer struct {
	sqsClient  *sqs.Client
	queueURL   string
	reconciler *Reconciler
	done       chan struct{}
}

// NewConsumer creates an account-events consumer.
func NewConsumer(sqsClient *sqs.Client, queueURL string, reconciler *Reconciler) *Consumer {
	return &Consumer{
		sqsClient:  sqsClient,
		queueURL:   queueURL,
		reconciler: reconciler,
		done:       make(chan struct{}),
	}
}

// Start begins polling in the background.
func (c *Consumer) Start(ctx context.Context) {
	log.Printf("[accounts.Consumer] started (queue=%s)", c.queueURL)
	go c.poll(ctx)
}

// Stop halts the polling loop.
func (c *Consumer) Stop() {
	close(c.done)
}

func (c *Consumer) poll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		out, err := c.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[accounts.Consumer] receive error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, msg := range out.Messages {
			var evt ChangeEvent
			if err := json.Unmarshal([]byte(*msg.Body), &evt); err != nil {
				log.Printf("[accounts.Consumer] bad message: %v", err)
				c.deleteMessage(ctx, msg.ReceiptHandle)
				continue
			}

			c.reconciler.ApplyEvent(evt)
			c.deleteMessage(ctx, msg.ReceiptHandle)
		}
	}
}

func (c *Consumer) deleteMessage(ctx context.Context, handle *string) {
	c.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: handle,
	})
}
