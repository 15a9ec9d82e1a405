package models

import (
	"testing"
)

func TestRespondRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *RespondRequest
		wantErr bool
	}{
		{"empty query", &RespondRequest{Query: ""}, true},
		{"valid query", &RespondRequest{Query: "hello"}, false},
		{"whitespace is not empty", &RespondRequest{Query: " "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordInput_Record(t *testing.T) {
	in := &RecordInput{Question: "q", Answer: "a", Category: "c"}
	got := in.Record()
	if got != (Record{Question: "q", Answer: "a", Category: "c"}) {
		t.Errorf("Record() = %+v", got)
	}
}
