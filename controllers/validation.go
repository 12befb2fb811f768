package controllers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/utils"
)

const (
	titleMinLen = 5
	titleMaxLen = 100
	bodyMinLen  = 20
	bodyMaxLen  = 1000
	minUserID   = 1
	maxUserID   = 10
)

var prohibitedWords = []string{"spam", "fake", "scam", "virus"}

// FieldError is one failed rule of a submitted post form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// postRequest is the create/update payload. Nil fields were not sent.
type postRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	UserID *int    `json:"userId"`
}

// sanitize strips markup from the text fields in place.
func (r *postRequest) sanitize() {
	if r.Title != nil {
		v := utils.Sanitize(*r.Title)
		r.Title = &v
	}
	if r.Body != nil {
		v := utils.Sanitize(*r.Body)
		r.Body = &v
	}
}

func (r postRequest) patch() models.PostPatch {
	return models.PostPatch{Title: r.Title, Body: r.Body, UserID: r.UserID}
}

// validateCreate requires title and body; userId is optional.
func validateCreate(r postRequest) []FieldError {
	var errs []FieldError
	if r.Title == nil || *r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else {
		errs = append(errs, validateText("title", *r.Title, titleMinLen, titleMaxLen)...)
	}
	if r.Body == nil || *r.Body == "" {
		errs = append(errs, FieldError{Field: "body", Message: "body is required"})
	} else {
		errs = append(errs, validateText("body", *r.Body, bodyMinLen, bodyMaxLen)...)
	}
	if r.UserID != nil {
		errs = append(errs, validateUserID(*r.UserID)...)
	}
	return errs
}

// validateUpdate checks only the fields that were sent.
func validateUpdate(r postRequest) []FieldError {
	var errs []FieldError
	if r.Title != nil {
		errs = append(errs, validateText("title", *r.Title, titleMinLen, titleMaxLen)...)
	}
	if r.Body != nil {
		errs = append(errs, validateText("body", *r.Body, bodyMinLen, bodyMaxLen)...)
	}
	if r.UserID != nil {
		errs = append(errs, validateUserID(*r.UserID)...)
	}
	return errs
}

func validateText(field, value string, minLen, maxLen int) []FieldError {
	n := utf8.RuneCountInString(value)
	switch {
	case n < minLen:
		return []FieldError{{Field: field, Message: fmt.Sprintf("minimum %d characters", minLen)}}
	case n > maxLen:
		return []FieldError{{Field: field, Message: fmt.Sprintf("maximum %d characters", maxLen)}}
	}
	lower := strings.ToLower(value)
	for _, word := range prohibitedWords {
		if strings.Contains(lower, word) {
			return []FieldError{{Field: field, Message: fmt.Sprintf("the word %q is not allowed", word)}}
		}
	}
	return nil
}

func validateUserID(id int) []FieldError {
	if id < minUserID {
		return []FieldError{{Field: "userId", Message: fmt.Sprintf("minimum value %d", minUserID)}}
	}
	if id > maxUserID {
		return []FieldError{{Field: "userId", Message: fmt.Sprintf("maximum value %d", maxUserID)}}
	}
	return nil
}
