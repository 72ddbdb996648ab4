package validator

import (
	"errors"
	"strings"
	"testing"

	"smarthost/pkg/logger"
	"smarthost/pkg/model"
)

func TestValidateRequest(t *testing.T) {
	v := NewReviewValidator(logger.Discard())

	tests := []struct {
		name      string
		req       model.ReviewRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			req:  model.ReviewRequest{BookingID: "507f1f77bcf86cd799439011", UserID: "507f1f77bcf86cd799439012", Rating: 5, Comment: "Great stay"},
		},
		{
			name:      "rating zero is missing",
			req:       model.ReviewRequest{BookingID: "507f1f77bcf86cd799439011", UserID: "507f1f77bcf86cd799439012"},
			wantField: "rating",
			wantMsg:   "rating is required",
		},
		{
			name:      "rating too high",
			req:       model.ReviewRequest{BookingID: "507f1f77bcf86cd799439011", UserID: "507f1f77bcf86cd799439012", Rating: 6},
			wantField: "rating",
			wantMsg:   "rating must be between 1 and 5",
		},
		{
			name:      "bad booking id",
			req:       model.ReviewRequest{BookingID: "b1", UserID: "507f1f77bcf86cd799439012", Rating: 3},
			wantField: "bookingId",
			wantMsg:   "bookingId must be a valid MongoDB ObjectID",
		},
		{
			name:      "comment too long",
			req:       model.ReviewRequest{BookingID: "507f1f77bcf86cd799439011", UserID: "507f1f77bcf86cd799439012", Rating: 3, Comment: strings.Repeat("x", 2001)},
			wantField: "comment",
			wantMsg:   "comment must be at most 2000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRequest() unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) || len(verrs) != 1 {
				t.Fatalf("ValidateRequest() error = %v, want one ValidationError", err)
			}
			if verrs[0].Field != tt.wantField || verrs[0].Message != tt.wantMsg {
				t.Errorf("got %+v, want field %q message %q", verrs[0], tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestValidateRequest_TrimsComment(t *testing.T) {
	req := model.ReviewRequest{BookingID: "507f1f77bcf86cd799439011", UserID: "507f1f77bcf86cd799439012", Rating: 4, Comment: "  cozy  "}
	if err := NewReviewValidator(logger.Discard()).ValidateRequest(&req); err != nil {
		t.Fatalf("ValidateRequest() unexpected error: %v", err)
	}
	if req.Comment != "cozy" {
		t.Errorf("Comment = %q, want %q", req.Comment, "cozy")
	}
}
