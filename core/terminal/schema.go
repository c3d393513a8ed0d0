package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// maxSchemaSize bounds the downloaded schema.
const maxSchemaSize = 8 << 20

var errNoSchema = errors.New("document declares no schema")

// SchemaValidator validates settings against the JSON schema referenced by
// the document's $schema key, or a fallback URL.
type SchemaValidator struct {
	client      *http.Client
	fallbackURL string
	logger      *zap.Logger
}

// NewSchemaValidator creates a validator. fallbackURL is used when the
// document has no $schema; it may be empty.
func NewSchemaValidator(fallbackURL string, timeout time.Duration, logger *zap.Logger) *SchemaValidator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SchemaValidator{
		client:      &http.Client{Timeout: timeout},
		fallbackURL: fallbackURL,
		logger:      logger,
	}
}

// Validate checks doc and logs the outcome. It never fails.
func (v *SchemaValidator) Validate(ctx context.Context, doc Document) {
	url, err := v.check(ctx, doc)
	if err != nil {
		v.logger.Debug("Settings schema validation skipped or failed",
			zap.String("schema", url),
			zap.Error(err),
		)
		return
	}
	v.logger.Debug("Settings match schema", zap.String("schema", url))
}

// check runs the validation and returns the schema URL used.
func (v *SchemaValidator) check(ctx context.Context, doc Document) (string, error) {
	url, _ := doc[KeySchema].(string)
	if url == "" {
		url = v.fallbackURL
	}
	if url == "" {
		return "", errNoSchema
	}

	data, err := v.fetch(ctx, url)
	if err != nil {
		return url, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return url, fmt.Errorf("failed to load schema: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return url, fmt.Errorf("failed to compile schema: %w", err)
	}

	instance, err := toInstance(doc)
	if err != nil {
		return url, err
	}
	return url, schema.Validate(instance)
}

func (v *SchemaValidator) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("schema fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return data, nil
}

// toInstance converts the document into the plain JSON tree the validator
// expects, resolving list pointers installed by EnsureProfiles.
func toInstance(doc Document) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings for validation: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("failed to decode settings for validation: %w", err)
	}
	return instance, nil
}
