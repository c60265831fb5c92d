package purchase

import "testing"

func TestInterpretSettlement(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawSettlementResponse
		want Outcome
	}{
		{
			"TopLevelSuccess",
			&RawSettlementResponse{Code: "00", Ref: "ref-1"},
			Outcome{Status: DELIVERED_PO, ConfirmationRef: "ref-1"},
		},
		{
			"NestedDelivered",
			&RawSettlementResponse{Code: "07", TransactionStatus: "Delivered", Ref: "ref-2"},
			Outcome{Status: DELIVERED_PO, ConfirmationRef: "ref-2"},
		},
		{
			"AcceptedProcessing",
			&RawSettlementResponse{Code: "09", Ref: "ref-3"},
			Outcome{Status: PENDING_PO, ConfirmationRef: "ref-3"},
		},
		{
			"ProviderDeclinedWithMessage",
			&RawSettlementResponse{Code: "41", Message: "insufficient vendor balance"},
			Outcome{Status: FAILED_PO, Reason: "insufficient vendor balance"},
		},
		{
			"UnrecognizedStatusWithoutMessage",
			&RawSettlementResponse{Code: "99"},
			Outcome{Status: FAILED_PO, Reason: "purchase failed"},
		},
		{
			"NilResponse",
			nil,
			Outcome{Status: FAILED_PO, Reason: "purchase failed"},
		},
		{
			"EmptyResponse",
			&RawSettlementResponse{},
			Outcome{Status: FAILED_PO, Reason: "purchase failed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpretSettlement(tt.raw)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
