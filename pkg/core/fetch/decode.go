package fetch

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// decodeLenient tries multiple decoding strategies on a vendor payload.
// Order of attempts:
// 1. Standard JSON decode
// 2. JSON repair (fixes trailing commas, single quotes, unclosed brackets)
// 3. Hjson decode (most lenient)
//
// Vendor endpoints intermittently ship payloads with trailing commas or
// comment lines; a hard json.Unmarshal would fail whole tickers on them.
func decodeLenient(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal(data, v); err == nil {
		return nil
	}

	return fmt.Errorf("payload is not decodable as JSON, repaired JSON or Hjson")
}
