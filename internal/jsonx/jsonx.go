// Package jsonx provides lenient JSON decoding for responses from external
// search APIs. Bodies occasionally arrive truncated or subtly malformed when
// relayed through corporate proxies; rather than dropping the whole result
// page, decoding retries after repairing the payload.
package jsonx

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeLenient unmarshals data into T. If the first attempt fails, the
// payload is run through jsonrepair and unmarshaling is retried once.
// An error is returned only when both attempts fail.
//
// Example:
//
//	resp, err := jsonx.DecodeLenient[searchResponse](body)
func DecodeLenient[T any](data []byte) (T, error) {
	var result T

	err := json.Unmarshal(data, &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	return result, nil
}
