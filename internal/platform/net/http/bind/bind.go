// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	perr "commentedit/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// UT aliases ut.Translator
type UT = ut.Translator

// ValidatorSvc holds the process validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton.
// Field names come from the form tag, then the json tag, then the Go name.
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("integer", isInteger)
		registerFormMessages(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		tag := fld.Tag.Get(key)
		if i := strings.Index(tag, ","); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

// isInteger accepts an optionally signed run of decimal digits
func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
	return err == nil
}

// RegisterValidation registers a custom tag on the singleton
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// RegisterMessage registers a fixed message for tag, replacing any previous one
func RegisterMessage(tag, text string) error {
	svc := Get()
	return svc.Validator.RegisterTranslation(tag, svc.Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag)
			return msg
		},
	)
}

// Struct validates s and returns field name to translated messages.
// A nil map means s is valid.
func Struct(s any) (map[string][]string, error) {
	err := Get().Validator.Struct(s)
	if err == nil {
		return nil, nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return nil, perr.Wrap(inv, perr.ErrorCodeUnknown, "validator misuse")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fe.Translate(Get().Translator))
	}
	return out, nil
}

// registerFormMessages swaps the default english texts for form style sentences
func registerFormMessages(v *validator.Validate, trans ut.Translator) {
	fixed := map[string]string{
		"required": "This field is required.",
		"email":    "Enter a valid email address.",
		"url":      "Enter a valid URL.",
		"integer":  "Enter a whole number.",
	}
	for tag, text := range fixed {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag())
				return msg
			},
		)
	}

	lengths := map[string]string{
		"min": "Ensure this value has at least {0} characters (it has {1}).",
		"max": "Ensure this value has at most {0} characters (it has {1}).",
	}
	for tag, text := range lengths {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				n := 0
				if s, ok := fe.Value().(string); ok {
					n = utf8.RuneCountInString(s)
				}
				msg, _ := t.T(fe.Tag(), fe.Param(), strconv.Itoa(n))
				return msg
			},
		)
	}
}

// Options controls body decoding
type Options struct {
	MaxBytes int64 // default 1MB
}

const defaultMaxBytes = 1 << 20

// Values reads the request body into url.Values.
// Form encoded, multipart and JSON object bodies are accepted; JSON scalars are stringified
// and a JSON null keeps the key with an empty value.
func Values(r *http.Request, opts ...Options) (url.Values, error) {
	o := Options{MaxBytes: defaultMaxBytes}
	if len(opts) > 0 && opts[0].MaxBytes > 0 {
		o = opts[0]
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		return jsonValues(io.LimitReader(r.Body, o.MaxBytes))
	case "multipart/form-data":
		if err := r.ParseMultipartForm(o.MaxBytes); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "invalid multipart body")
		}
		return r.PostForm, nil
	default:
		r.Body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
		if err := r.ParseForm(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "invalid form body")
		}
		return r.PostForm, nil
	}
}

func jsonValues(body io.Reader) (url.Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return nil, perr.JSONErrf("unexpected trailing data")
	}

	out := make(url.Values, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case []any:
			for _, item := range tv {
				out.Add(k, scalar(item))
			}
		default:
			out.Add(k, scalar(tv))
		}
	}
	return out, nil
}

func scalar(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case json.Number:
		return tv.String()
	case bool:
		return strconv.FormatBool(tv)
	default:
		b, _ := json.Marshal(tv)
		return string(b)
	}
}

// PathInt64 parses a positive integer path or query value
func PathInt64(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return id, nil
}
