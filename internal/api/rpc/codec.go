package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// There are no generated protobuf stubs; messages are plain structs carried as JSON.
// Clients select it with the "application/grpc+json" content subtype.
func init() {
	encoding.RegisterCodec(JSONCodec{})
}

type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string { return "json" }
