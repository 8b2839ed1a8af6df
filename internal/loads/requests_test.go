package loads

import (
	"encoding/json"
	"testing"
)

func TestPhoneCallRequest_AcceptsStringTypedPayload(t *testing.T) {
	// Legacy UI clients send booleans and numbers as strings.
	body := `{"agreed": "True", "seconds": "750", "call_type": "manual", "sentiment": "positive"}`

	var req PhoneCallRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !bool(req.Agreed) {
		t.Fatalf("expected agreed=true from \"True\"")
	}
	if float64(req.Seconds) != 750 {
		t.Fatalf("expected seconds=750, got %v", float64(req.Seconds))
	}
	if req.CallType != CallTypeManual || req.Sentiment != SentimentPositive {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestPhoneCallRequest_AcceptsNativePayload(t *testing.T) {
	body := `{"agreed": false, "seconds": 42.5, "call_type": "agent"}`

	var req PhoneCallRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if bool(req.Agreed) {
		t.Fatalf("expected agreed=false")
	}
	if float64(req.Seconds) != 42.5 {
		t.Fatalf("expected seconds=42.5, got %v", float64(req.Seconds))
	}
}

func TestFlexBool_RejectsGarbage(t *testing.T) {
	var b FlexBool
	if err := json.Unmarshal([]byte(`"maybe"`), &b); err == nil {
		t.Fatalf("expected error for non-boolean string")
	}
}

func TestFlexFloat_RejectsGarbage(t *testing.T) {
	var f FlexFloat
	if err := json.Unmarshal([]byte(`"fast"`), &f); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}
