package agents

import (
	"context"
	"sync"
	"time"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/prefixed_uuid"
)

// Transaction is a payment record owned by the payment agent's in-memory
// table. Created by process_payment with a fixed status; mutated once by
// refund_payment, which adds the refund fields without changing the status.
type Transaction struct {
	ID               string     `json:"transaction_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentMethod    string     `json:"payment_method"`
	BookingReference string     `json:"booking_reference"`
	UserID           string     `json:"user_id"`
	Timestamp        time.Time  `json:"timestamp"`
	RefundID         string     `json:"refund_id,omitempty"`
	RefundAmount     float64    `json:"refund_amount,omitempty"`
	RefundTimestamp  *time.Time `json:"refund_timestamp,omitempty"`
}

// transactionStore holds the payment agent's transactions for the process
// lifetime. Not persisted anywhere.
type transactionStore struct {
	mu           sync.Mutex
	transactions map[string]*Transaction
}

func newTransactionStore() *transactionStore {
	return &transactionStore{transactions: make(map[string]*Transaction)}
}

// NewPaymentAgent creates the agent handling simulated payment processing.
// Payments run fully deterministic (temperature 0).
func NewPaymentAgent(maxToolRounds int, factory PlannerFactory, log logger.Logger) *Agent {
	store := newTransactionStore()

	return NewAgent(
		"payment",
		"Handles payment processing and transaction management.",
		[]planner.Tool{
			store.processPaymentTool(),
			store.refundPaymentTool(),
			store.transactionStatusTool(),
		},
		planner.Config{Temperature: 0, MaxToolRounds: maxToolRounds},
		factory,
		log,
	)
}

func (s *transactionStore) processPaymentTool() planner.Tool {
	return planner.Tool{
		Name: "process_payment",
		Description: "Process a payment for a booking. " +
			"Input should be a JSON object with 'amount', 'currency', 'payment_method', " +
			"'booking_reference', and 'user_id'.",
		Invoke: s.processPayment,
	}
}

func (s *transactionStore) refundPaymentTool() planner.Tool {
	return planner.Tool{
		Name: "refund_payment",
		Description: "Process a refund for a booking. " +
			"Input should be a JSON object with 'transaction_id' and optional 'amount'.",
		Invoke: s.refundPayment,
	}
}

func (s *transactionStore) transactionStatusTool() planner.Tool {
	return planner.Tool{
		Name: "get_transaction_status",
		Description: "Get the status of a transaction. " +
			"Input should be a JSON object with 'transaction_id'.",
		Invoke: s.getTransactionStatus,
	}
}

// processPayment simulates a payment. A real payment processor integration
// would add a failure branch here; the simulation always completes.
func (s *transactionStore) processPayment(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	transaction := &Transaction{
		ID:               prefixed_uuid.New("txn").String(),
		Amount:           floatField(data, "amount", 0),
		Currency:         stringField(data, "currency", "USD"),
		Status:           "completed",
		PaymentMethod:    stringField(data, "payment_method", ""),
		BookingReference: stringField(data, "booking_reference", ""),
		UserID:           stringField(data, "user_id", ""),
		Timestamp:        time.Now().UTC(),
	}

	s.mu.Lock()
	s.transactions[transaction.ID] = transaction
	s.mu.Unlock()

	return successResult(map[string]any{
		"transaction_id": transaction.ID,
		"message":        "Payment processed successfully",
	})
}

// refundPayment refunds a stored transaction. The amount defaults to the
// original transaction amount; the transaction status is left unchanged.
func (s *transactionStore) refundPayment(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	transactionID := stringField(data, "transaction_id", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	transaction, ok := s.transactions[transactionID]
	if !ok {
		return errorResult("Transaction not found")
	}

	refundAmount := floatField(data, "amount", transaction.Amount)
	now := time.Now().UTC()

	transaction.RefundID = prefixed_uuid.New("ref").String()
	transaction.RefundAmount = refundAmount
	transaction.RefundTimestamp = &now

	return successResult(map[string]any{
		"refund_id":       transaction.RefundID,
		"amount_refunded": refundAmount,
		"message":         "Refund processed successfully",
	})
}

func (s *transactionStore) getTransactionStatus(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	transactionID := stringField(data, "transaction_id", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	transaction, ok := s.transactions[transactionID]
	if !ok {
		return errorResult("Transaction not found")
	}

	return successResult(map[string]any{"transaction": transaction})
}
