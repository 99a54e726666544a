package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/holdings/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FieldErrors maps a JSON field path such as "activities[0].shares" to a
// human readable message.
type FieldErrors map[string]string

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

const (
	msgRequired       = "This field is required."
	msgBlank          = "This field may not be blank."
	msgDecimalPlaces  = "Ensure that there are no more than 2 decimal places."
	msgDecimalDigits  = "Ensure that there are no more than 10 digits in total."
	msgDatetime       = "Datetime has wrong format. Use RFC 3339, e.g. 2024-01-30T00:00:00Z."
	msgNumber         = "A valid number is required."
	msgInteger        = "A valid integer is required."
	msgString         = "Not a valid string."
	msgBoolean        = "Must be a valid boolean."
	msgExpectedList   = "Expected a list of items."
	msgExpectedObject = "Expected an object."
	msgInvalid        = "Invalid value."
	msgMalformedBody  = "Request body must be a JSON object."

	bodyField = "body"
)

var errNoDatabase = errors.New("database is not configured")

// decimal(10,2) holds magnitudes below 10^8.
var maxMoney = decimal.New(1, 8)

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return msgInvalid
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func respondInvalid(ctx *gin.Context, fields FieldErrors) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
}

// bindJSON binds the request body into obj and answers the 400 itself when
// that fails. The body stays cached for jsonKeys.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		respondBindError(ctx, err, obj)
		return false
	}
	return true
}

// respondBindError turns a binding failure into a 400 naming the offending
// fields as indexed JSON paths.
func respondBindError(ctx *gin.Context, err error, obj interface{}) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := FieldErrors{}
		for _, fe := range validationErrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		respondInvalid(ctx, fields)
		return
	}

	var body []byte
	if cached, ok := ctx.Get(gin.BodyBytesKey); ok {
		body, _ = cached.([]byte)
	}

	fields := decodeFieldErrors(body, reflect.TypeOf(obj))
	if len(fields) == 0 {
		fields[bodyField] = msgMalformedBody
	}
	respondInvalid(ctx, fields)
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

// decodeFieldErrors decodes body one field at a time against typ and reports
// every field whose value does not fit its Go type.
func decodeFieldErrors(body []byte, typ reflect.Type) FieldErrors {
	fields := FieldErrors{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		fields[bodyField] = msgMalformedBody
		return fields
	}

	collectDecodeErrors(fields, "", raw, typ)
	return fields
}

func collectDecodeErrors(fields FieldErrors, prefix string, raw map[string]json.RawMessage, typ reflect.Type) {
	typ = indirectType(typ)
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		value, ok := raw[name]
		if !ok {
			continue
		}
		path := prefix + name

		elem, nested := nestedObjectList(field.Type)
		if !nested {
			if err := json.Unmarshal(value, reflect.New(field.Type).Interface()); err != nil {
				fields[path] = decodeMessage(field.Type)
			}
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			fields[path] = msgExpectedList
			continue
		}

		for idx, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, idx)

			var obj map[string]json.RawMessage
			if err := json.Unmarshal(item, &obj); err != nil {
				fields[itemPath] = msgExpectedObject
				continue
			}

			collectDecodeErrors(fields, itemPath+".", obj, elem)
		}
	}
}

func indirectType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

// nestedObjectList reports whether typ is a list of plain structs, such as
// the tags or activities of an investment write.
func nestedObjectList(typ reflect.Type) (reflect.Type, bool) {
	typ = indirectType(typ)
	if typ.Kind() != reflect.Slice {
		return nil, false
	}

	elem := indirectType(typ.Elem())
	if elem.Kind() != reflect.Struct || elem == timeType || reflect.PointerTo(elem).Implements(unmarshalerType) {
		return nil, false
	}
	return elem, true
}

func decodeMessage(typ reflect.Type) string {
	typ = indirectType(typ)

	switch {
	case typ == timeType:
		return msgDatetime
	case reflect.PointerTo(typ).Implements(unmarshalerType):
		return msgNumber
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return msgInteger
	case reflect.String:
		return msgString
	case reflect.Bool:
		return msgBoolean
	case reflect.Slice:
		return msgExpectedList
	default:
		return msgInvalid
	}
}

// respondLookupError answers a failed owned-row lookup. Rows owned by someone
// else come back as gorm.ErrRecordNotFound too, so they are a 404 as well.
func respondLookupError(ctx *gin.Context, err error, entity string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}

	log.Printf("Failed to retrieve %s: %v", strings.ToLower(entity), err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
}

// ownerID answers 401 itself when no user was resolved for the request.
func ownerID(ctx *gin.Context) (uint, bool) {
	id, err := utils.OwnerID(ctx)
	if err != nil {
		respondUnauthenticated(ctx)
		return 0, false
	}
	return id, true
}

func respondInternal(ctx *gin.Context, action string, err error) {
	log.Printf("Failed to %s: %v", action, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// validateMoney checks a value fits a decimal(10,2) column.
func validateMoney(fields FieldErrors, path string, value decimal.Decimal) {
	if !value.Equal(value.Truncate(2)) {
		fields[path] = msgDecimalPlaces
		return
	}
	if value.Abs().GreaterThanOrEqual(maxMoney) {
		fields[path] = msgDecimalDigits
	}
}

func validateNotBlank(fields FieldErrors, path string, value *string, required bool) {
	if value == nil {
		if required {
			fields[path] = msgRequired
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		fields[path] = msgBlank
	}
}

// jsonKeys reports which top-level keys a JSON object body carried. The body
// must have been bound with ShouldBindBodyWith so it can be read again.
func jsonKeys(ctx *gin.Context) map[string]json.RawMessage {
	raw := map[string]json.RawMessage{}
	if err := ctx.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		return map[string]json.RawMessage{}
	}
	return raw
}
