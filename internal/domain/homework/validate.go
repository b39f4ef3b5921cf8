package homework

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse  = errors.New("API response cast to Go data types is unexpected")
	ErrMissingHomeworks   = errors.New("API response is missing homework information")
	ErrUnexpectedDataType = errors.New("data type in API response is unexpected")
	ErrMissingTimestamp   = errors.New("API response is missing response time")
)

// ValidateResponse checks a raw API response for correctness and decodes it
// into a StatusFeed. The endpoint has been observed to wrap the response
// object in a single-element array, so that shape is tolerated and unwrapped.
// Record ordering is preserved as received.
func ValidateResponse(raw []byte) (*StatusFeed, error) {
	payload := bytes.TrimSpace(raw)
	if len(payload) > 0 && payload[0] == '[' {
		var wrapped []json.RawMessage
		if err := json.Unmarshal(payload, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, payload)
		}
		if len(wrapped) != 1 {
			return nil, fmt.Errorf("%w: array of %d elements", ErrMalformedResponse, len(wrapped))
		}
		payload = bytes.TrimSpace(wrapped[0])
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, payload)
	}

	homeworksRaw, ok := envelope["homeworks"]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingHomeworks, payload)
	}
	trimmed := bytes.TrimSpace(homeworksRaw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: homeworks is %s", ErrUnexpectedDataType, homeworksRaw)
	}
	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedDataType, homeworksRaw)
	}

	dateRaw, ok := envelope["current_date"]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTimestamp, payload)
	}
	var currentDate int64
	if err := json.Unmarshal(dateRaw, &currentDate); err != nil {
		return nil, fmt.Errorf("%w: current_date is %s", ErrMissingTimestamp, dateRaw)
	}

	return &StatusFeed{Homeworks: records, CurrentDate: currentDate}, nil
}
