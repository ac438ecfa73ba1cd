/*
 * Copyright 2026 The Quill Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package validation provides struct and value validation on top of
// go-playground/validator with English error descriptions.
package validation

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// usernameRegex accepts case-sensitive letters, digits, hyphen, period and
// underscore.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9\-._]+$`)

var (
	defaultValidator = validator.New(validator.WithRequiredStructEnabled())
	defaultEn        = en.New()
	uni              = ut.New(defaultEn, defaultEn)

	// trans is the translator for the 'en' locale.
	trans, _ = uni.GetTranslator(defaultEn.Locale())
)

// FieldLevel is the field level interface passed to custom rules.
type FieldLevel = validator.FieldLevel

// Violation is a single failed rule.
type Violation struct {
	Tag         string
	Field       string
	Err         error
	Description string
}

// Error returns the error message.
func (e Violation) Error() string {
	return e.Err.Error()
}

// StructError is the error returned by ValidateStruct. Each violation names
// the offending field by its JSON name.
type StructError struct {
	Violations []Violation
}

// Error returns the descriptions of all violations, one per line.
func (s StructError) Error() string {
	sb := strings.Builder{}

	for _, v := range s.Violations {
		sb.WriteString(v.Description)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}

// RegisterValidation registers a custom rule under tag. It is meant to be
// called from init functions.
func RegisterValidation(tag string, fn validator.Func) error {
	if err := defaultValidator.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register validation: %w", err)
	}
	return nil
}

// RegisterTranslation registers the English message for tag. "{0}" is
// replaced with the field name.
func RegisterTranslation(tag, msg string) error {
	if err := defaultValidator.RegisterTranslation(
		tag,
		trans,
		func(ut ut.Translator) error {
			if err := ut.Add(tag, msg, true); err != nil {
				return fmt.Errorf("register translation: %w", err)
			}
			return nil
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	); err != nil {
		return fmt.Errorf("register translation: %w", err)
	}
	return nil
}

// ValidateValue validates v against the comma separated rules in tag.
func ValidateValue(v any, tag string) error {
	if err := defaultValidator.Var(v, tag); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		e := errs[0]
		return Violation{
			Tag:         e.Tag(),
			Err:         e,
			Description: e.Translate(trans),
		}
	}
	return nil
}

// ValidateStruct validates the struct against its `validate` tags.
func ValidateStruct(s any) error {
	if err := defaultValidator.Struct(s); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		structError := &StructError{}
		for _, e := range errs {
			structError.Violations = append(structError.Violations, Violation{
				Tag:         e.Tag(),
				Field:       e.Field(),
				Err:         e,
				Description: e.Translate(trans),
			})
		}
		return structError
	}

	return nil
}

// jsonFieldName reports fields by their JSON name so that violations match
// the request bodies of the HTTP API.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func mustRegister(tag, msg string, fn validator.Func) {
	if err := RegisterValidation(tag, fn); err != nil {
		fmt.Fprintf(os.Stderr, "validation %s: %v\n", tag, err)
		os.Exit(1)
	}
	if err := RegisterTranslation(tag, msg); err != nil {
		fmt.Fprintf(os.Stderr, "validation %s: %v\n", tag, err)
		os.Exit(1)
	}
}

func init() {
	defaultValidator.RegisterTagNameFunc(jsonFieldName)

	if err := entranslations.RegisterDefaultTranslations(defaultValidator, trans); err != nil {
		fmt.Fprintf(os.Stderr, "validation register default translations: %v\n", err)
		os.Exit(1)
	}

	mustRegister(
		"username",
		"{0} must only contain letters, numbers, hyphen, period and underscore",
		func(level validator.FieldLevel) bool {
			return usernameRegex.MatchString(level.Field().String())
		},
	)

	mustRegister(
		"nonblank",
		"{0} must not be blank",
		func(level validator.FieldLevel) bool {
			return strings.TrimSpace(level.Field().String()) != ""
		},
	)
}
