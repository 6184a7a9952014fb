package usecase

import (
	"encoding/json"
	"reflect"
	"testing"

	"placetopay_checkout/internal/domain/entities"
)

func approvedTx(ref string, fields ...entities.ProcessorField) entities.GatewayTransaction {
	return entities.GatewayTransaction{
		InternalReference: ref,
		Authorization:     "AUTH-" + ref,
		Status:            entities.GatewayStatus{Status: entities.GatewayStatusApproved, Reason: "00", Message: "Aprobada", Date: "2026-01-01T00:00:00-05:00"},
		Franchise:         "CR_VS",
		PaymentMethodName: "Visa",
		PaymentMethod:     "visa",
		Amount:            "50.00",
		IssuerName:        "BANCO",
		ProcessorFields:   fields,
	}
}

func TestStatusReconciler_Reconcile(t *testing.T) {
	r := NewStatusReconciler()
	status := entities.GatewayStatus{Status: entities.GatewayStatusApproved, Reason: "00", Message: "Aprobada", Date: "2026-01-01T00:00:00-05:00"}

	t.Run("no transactions keeps history", func(t *testing.T) {
		history := map[string]any{"1": map[string]any{"status": "PENDING"}}
		current := entities.AdditionalInformation{
			entities.InfoRequestID:    "123",
			entities.InfoTransactions: history,
		}

		got := r.Reconcile(current, entities.GatewayStatus{Status: entities.GatewayStatusPending}, nil)
		if got[entities.InfoAuthorization] != nil {
			t.Fatalf("expected nil authorization, got %v", got[entities.InfoAuthorization])
		}
		if got[entities.InfoRefunded] != false {
			t.Fatalf("expected refunded false, got %v", got[entities.InfoRefunded])
		}
		if !reflect.DeepEqual(got[entities.InfoTransactions], history) {
			t.Fatalf("expected transactions unchanged, got %v", got[entities.InfoTransactions])
		}
		if got.RequestID() != "123" {
			t.Fatalf("expected request id kept, got %q", got.RequestID())
		}
	})

	t.Run("no transactions and no history", func(t *testing.T) {
		got := r.Reconcile(entities.AdditionalInformation{}, status, nil)
		if txs := got.Transactions(); len(txs) != 0 {
			t.Fatalf("expected empty transactions, got %v", txs)
		}
		if _, ok := got[entities.InfoTransactions]; !ok {
			t.Fatalf("expected transactions key to be set")
		}
	})

	t.Run("merge is additive", func(t *testing.T) {
		current := entities.AdditionalInformation{
			entities.InfoTransactions: map[string]any{
				"1": map[string]any{"status": "PENDING", "authorization": "OLD"},
				"2": map[string]any{"status": "REJECTED"},
			},
		}

		got := r.Reconcile(current, status, []entities.GatewayTransaction{approvedTx("1"), approvedTx("3")})
		txs := got.Transactions()
		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %v", txs)
		}
		if txs["1"].Status != entities.GatewayStatusApproved || txs["1"].Authorization != "AUTH-1" {
			t.Fatalf("expected transaction 1 overwritten, got %+v", txs["1"])
		}
		if txs["2"].Status != "REJECTED" {
			t.Fatalf("expected transaction 2 kept, got %+v", txs["2"])
		}
		if got[entities.InfoAuthorization] != "AUTH-1" {
			t.Fatalf("expected primary authorization, got %v", got[entities.InfoAuthorization])
		}
		if got.String(entities.InfoStatus) != entities.GatewayStatusApproved || got.String(entities.InfoStatusReason) != "00" {
			t.Fatalf("unexpected status fields %v", got)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		current := entities.AdditionalInformation{entities.InfoStatus: entities.GatewayStatusPending}
		_ = r.Reconcile(current, status, []entities.GatewayTransaction{approvedTx("1")})
		if len(current) != 1 || current[entities.InfoStatus] != entities.GatewayStatusPending {
			t.Fatalf("expected input unchanged, got %v", current)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		txs := []entities.GatewayTransaction{approvedTx("1", entities.ProcessorField{Keyword: "bin", Value: "411111"})}
		first := r.Reconcile(entities.AdditionalInformation{entities.InfoRequestID: "123"}, status, txs)
		second := r.Reconcile(first, status, txs)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical output\nfirst:  %v\nsecond: %v", first, second)
		}
	})

	t.Run("processor fields promoted", func(t *testing.T) {
		tx := approvedTx("1", entities.ProcessorField{Keyword: "bin", Value: "411111"})
		got := r.Reconcile(entities.AdditionalInformation{}, status, []entities.GatewayTransaction{tx})
		fields, ok := got[entities.InfoProcessorField].(map[string]any)
		if !ok || fields["bin"] != "411111" {
			t.Fatalf("unexpected processor_field %v", got[entities.InfoProcessorField])
		}
	})
}

func TestExtractProcessorFields(t *testing.T) {
	t.Run("fields after bin and lastDigits are captured", func(t *testing.T) {
		got := ExtractProcessorFields([]entities.ProcessorField{
			{Keyword: "bin", Value: "411111"},
			{Keyword: "lastDigits", Value: "1111"},
			{Keyword: "batch", Value: "001"},
			{Keyword: "line", Value: "7"},
			{Keyword: "installments", Value: float64(3)},
			{Keyword: "unknown", Value: "x"},
		})
		want := map[ProcessorKeyword]string{
			KeywordBin:          "411111",
			KeywordLastDigits:   "1111",
			KeywordBatch:        "001",
			KeywordLine:         "7",
			KeywordInstallments: "3",
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("nested installments", func(t *testing.T) {
		got := ExtractProcessorFields([]entities.ProcessorField{
			{Keyword: "credit", Value: map[string]any{"installments": "12", "code": "1"}},
		})
		if got[KeywordInstallments] != "12" {
			t.Fatalf("expected nested installments, got %v", got)
		}
	})

	t.Run("large json numbers keep plain notation", func(t *testing.T) {
		var fields []entities.ProcessorField
		raw := `[{"keyword":"bin","value":41111111},{"keyword":"batch","value":1234567}]`
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := ExtractProcessorFields(fields)
		if got[KeywordBin] != "41111111" {
			t.Fatalf("expected bin 41111111, got %s", got[KeywordBin])
		}
		if got[KeywordBatch] != "1234567" {
			t.Fatalf("expected batch 1234567, got %s", got[KeywordBatch])
		}
	})
}

func TestTransactionRecordOf(t *testing.T) {
	rec := TransactionRecordOf(approvedTx("1",
		entities.ProcessorField{Keyword: "lastDigits", Value: "1111"},
		entities.ProcessorField{Keyword: "batch", Value: "001"},
	))
	if rec.LastDigits != "1111" || rec.Lote != "001" || rec.Franchise != "CR_VS" || rec.StatusReason != "00" {
		t.Fatalf("unexpected record %+v", rec)
	}
}
