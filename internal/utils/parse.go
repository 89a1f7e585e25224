package utils

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSONLenient unmarshals content into T, repairing the JSON first when a
// strict parse fails. User-supplied JSON (conversation transcripts typed on a
// command line, hand-edited request bodies) routinely arrives with single
// quotes, unquoted keys or trailing commas; jsonrepair recovers those cases.
func ParseJSONLenient[T any](content string) (T, error) {
	var result T

	strictErr := json.Unmarshal([]byte(content), &result)
	if strictErr == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		// Report the original parse error; the repair failure just means the
		// input was beyond saving.
		return result, fmt.Errorf("error parsing JSON: %w", strictErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("error parsing repaired JSON: %w", err)
	}

	return result, nil
}
