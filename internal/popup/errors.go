package popup

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/nikbrunner/bm-popup/internal/messaging"
)

// Messages shown when no structured error is available.
const (
	ConnectivityMessage = "Could not reach the bookmark service. Check your connection and try again."
	InvalidTokenMessage = "Invalid token. Update it in settings."
	GenericFailure      = "Something went wrong"
	SavedMessage        = "Saved!"
)

// ErrorCodeArchivedURLExists marks a 409 for a URL that lives in the archive.
const ErrorCodeArchivedURLExists = "ARCHIVED_URL_EXISTS"

// StatusKind styles a status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusInfo
	StatusError
)

// Status is the single message shown under the save form.
type Status struct {
	Kind      StatusKind
	Message   string
	Link      string
	LinkLabel string
}

// Links are the web app pages an error can point to.
type Links struct {
	Settings string
	Billing  string
	Terms    string
	Bookmark func(id string) string
}

// ConnectivityStatus is the outcome of a transport failure.
func ConnectivityStatus() Status {
	return Status{Kind: StatusError, Message: ConnectivityMessage}
}

// DescribeSaveError maps a failed CREATE_BOOKMARK response to exactly one
// status. Rules are checked in order; the first match wins.
func DescribeSaveError(resp messaging.Response, links Links) Status {
	var detail, errText, errorCode, existingID string
	if resp.Body != nil {
		detail = resp.Body.Detail
		errText = resp.Body.Error
		errorCode = resp.Body.ErrorCode
		existingID = string(resp.Body.ExistingBookmarkID)
	}

	switch resp.Status {
	case http.StatusBadRequest:
		return Status{Kind: StatusError, Message: orDefault(detail, "Invalid data")}

	case http.StatusUnauthorized:
		return Status{
			Kind:      StatusError,
			Message:   "Invalid token",
			Link:      links.Settings,
			LinkLabel: "Open settings",
		}

	case http.StatusPaymentRequired:
		return Status{
			Kind:      StatusError,
			Message:   orDefault(detail, "Limit reached"),
			Link:      links.Billing,
			LinkLabel: "Upgrade",
		}

	case http.StatusConflict:
		if errorCode == ErrorCodeArchivedURLExists && existingID != "" {
			status := Status{
				Kind:      StatusInfo,
				Message:   "This URL is already in your archive",
				LinkLabel: "View it",
			}
			if links.Bookmark != nil {
				status.Link = links.Bookmark(existingID)
			}
			return status
		}
		return Status{Kind: StatusInfo, Message: "Already saved"}

	case http.StatusTooManyRequests:
		retry := "?"
		if resp.RetryAfter != nil {
			retry = strconv.Itoa(*resp.RetryAfter)
		}
		return Status{Kind: StatusError, Message: fmt.Sprintf("Rate limited, retry in %s seconds", retry)}

	case http.StatusUnavailableForLegalReasons:
		return Status{
			Kind:      StatusError,
			Message:   "Accept the terms first",
			Link:      links.Terms,
			LinkLabel: "Review terms",
		}
	}

	if errText != "" {
		return Status{Kind: StatusError, Message: errText}
	}
	cause := "network"
	if resp.Status != 0 {
		cause = strconv.Itoa(resp.Status)
	}
	return Status{Kind: StatusError, Message: fmt.Sprintf("Unexpected error (%s)", cause)}
}

// SearchErrorMessage is the single message replacing the result list.
func SearchErrorMessage(status int) string {
	if status == http.StatusUnauthorized {
		return InvalidTokenMessage
	}
	return ConnectivityMessage
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
