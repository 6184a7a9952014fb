package entities

import "testing"

func TestAdditionalInformation_Merge(t *testing.T) {
	base := AdditionalInformation{InfoStatus: GatewayStatusPending, InfoRequestID: "1"}
	got := base.Merge(map[string]any{InfoStatus: GatewayStatusApproved, InfoAuthorization: "A1"})

	if got.String(InfoStatus) != GatewayStatusApproved || got.String(InfoAuthorization) != "A1" || got.RequestID() != "1" {
		t.Fatalf("unexpected merge %v", got)
	}
	if base.String(InfoStatus) != GatewayStatusPending {
		t.Fatalf("expected receiver unchanged, got %v", base)
	}
}

func TestAdditionalInformation_String(t *testing.T) {
	info := AdditionalInformation{"n": 123, "nil": nil, "s": "x"}
	if info.String("n") != "123" || info.String("nil") != "" || info.String("s") != "x" || info.String("missing") != "" {
		t.Fatalf("unexpected string values")
	}
}

func TestAdditionalInformation_Transactions(t *testing.T) {
	t.Run("typed", func(t *testing.T) {
		info := AdditionalInformation{InfoTransactions: map[string]TransactionRecord{"1": {Status: "APPROVED"}}}
		if got := info.Transactions(); got["1"].Status != "APPROVED" {
			t.Fatalf("unexpected transactions %v", got)
		}
	})

	t.Run("round-tripped", func(t *testing.T) {
		info := AdditionalInformation{InfoTransactions: map[string]any{
			"1":   map[string]any{"status": "APPROVED", "lastDigits": "1111", "installments": "3"},
			"2":   TransactionRecord{Status: "REJECTED"},
			"bad": map[string]any{"status": 5},
		}}
		got := info.Transactions()
		if len(got) != 2 {
			t.Fatalf("expected undecodable entry dropped, got %v", got)
		}
		if got["1"].LastDigits != "1111" || got["1"].Installments != "3" || got["2"].Status != "REJECTED" {
			t.Fatalf("unexpected transactions %v", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := (AdditionalInformation{}).Transactions(); got == nil || len(got) != 0 {
			t.Fatalf("expected empty map, got %v", got)
		}
	})
}

func TestGatewayResponse_IsSuccessful(t *testing.T) {
	cases := map[string]bool{
		GatewayStatusOK:       true,
		GatewayStatusPending:  true,
		GatewayStatusApproved: true,
		GatewayStatusFailed:   false,
		"error":               false,
		"":                    false,
	}
	for status, want := range cases {
		r := GatewayResponse{Status: GatewayStatus{Status: status}}
		if r.IsSuccessful() != want {
			t.Fatalf("status %q: expected %v", status, want)
		}
	}
}

func TestOrder_VisibleItems(t *testing.T) {
	o := Order{Items: []OrderItem{{ID: "1"}, {ID: "2", ParentItemID: "1"}, {ID: "3", Hidden: true}}}
	if got := o.VisibleItems(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected visible items %+v", got)
	}
	if _, ok := o.ItemByID("2"); !ok {
		t.Fatalf("expected child item to be found")
	}
}
