package popup_test

import (
	"testing"

	"github.com/nikbrunner/bm-popup/internal/api"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"gotest.tools/v3/assert"
)

var testLinks = popup.Links{
	Settings: "https://app.test/settings",
	Billing:  "https://app.test/settings/billing",
	Terms:    "https://app.test/terms",
	Bookmark: func(id string) string { return "https://app.test/bookmarks/" + id },
}

func failure(status int, body *api.ErrorBody, retryAfter *int) messaging.Response {
	return messaging.Response{Success: false, Status: status, Body: body, RetryAfter: retryAfter}
}

func TestDescribeSaveError(t *testing.T) {
	retry := 30

	tests := []struct {
		name string
		resp messaging.Response
		want popup.Status
	}{
		{
			name: "400 with detail",
			resp: failure(400, &api.ErrorBody{Detail: "URL is invalid"}, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "URL is invalid"},
		},
		{
			name: "400 without body",
			resp: failure(400, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Invalid data"},
		},
		{
			name: "401",
			resp: failure(401, &api.ErrorBody{Detail: "ignored"}, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Invalid token", Link: testLinks.Settings, LinkLabel: "Open settings"},
		},
		{
			name: "402 default",
			resp: failure(402, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Limit reached", Link: testLinks.Billing, LinkLabel: "Upgrade"},
		},
		{
			name: "402 detail",
			resp: failure(402, &api.ErrorBody{Detail: "100 bookmarks max"}, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "100 bookmarks max", Link: testLinks.Billing, LinkLabel: "Upgrade"},
		},
		{
			name: "409 archived with id",
			resp: failure(409, &api.ErrorBody{ErrorCode: "ARCHIVED_URL_EXISTS", ExistingBookmarkID: "7"}, nil),
			want: popup.Status{Kind: popup.StatusInfo, Message: "This URL is already in your archive", Link: "https://app.test/bookmarks/7", LinkLabel: "View it"},
		},
		{
			name: "409 archived without id",
			resp: failure(409, &api.ErrorBody{ErrorCode: "ARCHIVED_URL_EXISTS"}, nil),
			want: popup.Status{Kind: popup.StatusInfo, Message: "Already saved"},
		},
		{
			name: "409 other code",
			resp: failure(409, &api.ErrorBody{ErrorCode: "DUPLICATE", ExistingBookmarkID: "7"}, nil),
			want: popup.Status{Kind: popup.StatusInfo, Message: "Already saved"},
		},
		{
			name: "429 with retry",
			resp: failure(429, nil, &retry),
			want: popup.Status{Kind: popup.StatusError, Message: "Rate limited, retry in 30 seconds"},
		},
		{
			name: "429 without retry",
			resp: failure(429, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Rate limited, retry in ? seconds"},
		},
		{
			name: "451",
			resp: failure(451, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Accept the terms first", Link: testLinks.Terms, LinkLabel: "Review terms"},
		},
		{
			name: "500 with error text",
			resp: failure(500, &api.ErrorBody{Error: "database down"}, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "database down"},
		},
		{
			name: "500 without text",
			resp: failure(500, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Unexpected error (500)"},
		},
		{
			name: "no status",
			resp: failure(0, nil, nil),
			want: popup.Status{Kind: popup.StatusError, Message: "Unexpected error (network)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, popup.DescribeSaveError(tt.resp, testLinks), tt.want)
		})
	}
}

func TestSearchErrorMessage(t *testing.T) {
	assert.Equal(t, popup.SearchErrorMessage(401), popup.InvalidTokenMessage)
	assert.Equal(t, popup.SearchErrorMessage(500), popup.ConnectivityMessage)
	assert.Equal(t, popup.SearchErrorMessage(0), popup.ConnectivityMessage)
}
