// Package common holds request helpers shared by the resource handlers.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidID is returned by ParamID for non-numeric or zero ids
var ErrInvalidID = errors.New("invalid id")

// ParamID parses a positive integer route parameter
func ParamID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// BoolOr dereferences p, falling back to def when the field was omitted
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// IntOr dereferences p, falling back to def when the field was omitted
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// StringOr dereferences p, falling back to def when the field was omitted
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// JSONList is a list field that arrives either as a JSON array (JSON
// bodies) or as a string holding a JSON array (multipart forms).
type JSONList struct {
	Raw json.RawMessage
	Set bool
}

func (j *JSONList) UnmarshalJSON(data []byte) error {
	j.Set = true
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		return j.UnmarshalText([]byte(s))
	}
	return j.assign(trimmed)
}

func (j *JSONList) UnmarshalText(text []byte) error {
	j.Set = true
	return j.assign(bytes.TrimSpace(text))
}

func (j *JSONList) assign(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		j.Raw = json.RawMessage("[]")
		return nil
	}
	var list []interface{}
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("must be a JSON array")
	}
	j.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Value returns the list as a JSON column value
func (j JSONList) Value() datatypes.JSON {
	if len(j.Raw) == 0 {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(j.Raw)
}

// Index sends doc to the search index. Failures are logged only.
func Index(ctx context.Context, idx search.Indexer, doc search.Document) {
	if idx == nil {
		return
	}
	if err := idx.Index(ctx, doc); err != nil {
		log.Printf("[WARN] search index update failed for %s: %v", doc.ID, err)
	}
}

// Unindex removes a record from the search index. Failures are logged only.
func Unindex(ctx context.Context, idx search.Indexer, kind string, id uint) {
	if idx == nil {
		return
	}
	if err := idx.Remove(ctx, kind, id); err != nil {
		log.Printf("[WARN] search index removal failed for %s: %v", search.DocumentID(kind, id), err)
	}
}

// Saved writes a 200 with message and data plus the cleanup results, if any
func Saved(c *fiber.Ctx, message string, data interface{}, cleanup []uploads.DeleteResult) error {
	var files interface{}
	if len(cleanup) > 0 {
		files = cleanup
	}
	return response.SuccessWithFiles(c, message, data, files)
}

// Discard removes a superseded file and returns its result as a one-element
// slice, or nil when there was nothing to remove.
func Discard(ctx context.Context, svc *uploads.Service, url string) []uploads.DeleteResult {
	if url == "" {
		return nil
	}
	return []uploads.DeleteResult{svc.Discard(ctx, url)}
}

// Abandon removes a file stored for a request whose database write failed
func Abandon(ctx context.Context, svc *uploads.Service, url string) {
	if url == "" {
		return
	}
	svc.Discard(ctx, url)
}

// FindByParam loads dest by the :id route parameter. Failures come back as
// *fiber.Error (400 for a bad id, 404 naming the resource) for the app
// error handler to render.
func FindByParam(c *fiber.Ctx, db *gorm.DB, dest interface{}, resource string) error {
	id, err := ParamID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid "+resource+" ID")
	}

	if err := db.WithContext(c.UserContext()).First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, NotFoundMessage(resource))
		}
		return err
	}
	return nil
}

// NotFoundMessage is "<Resource> not found"
func NotFoundMessage(resource string) string {
	if resource == "" {
		return "Resource not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}
