package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuoteNotify = "quote.notify"

// QuoteNotifyPayload carries everything the worker needs to send the mails
// for one submission without reading the sheet back.
type QuoteNotifyPayload struct {
	QuoteNumber       string `json:"quoteNumber"`
	ClientName        string `json:"clientName"`
	ClientEmail       string `json:"clientEmail"`
	ClientPhone       string `json:"clientPhone"`
	ContactMethod     string `json:"contactMethod"`
	EstimateFormatted string `json:"estimateFormatted"`
}

func NewQuoteNotifyTask(payload QuoteNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteNotify, data), nil
}

func ParseQuoteNotifyPayload(task *asynq.Task) (QuoteNotifyPayload, error) {
	var payload QuoteNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteNotifyPayload{}, err
	}
	return payload, nil
}
