package models

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormErrors maps a form field name to a message suitable for redisplay.
type FormErrors map[string]string

// Get returns the message for field, or "" when the field is valid.
func (e FormErrors) Get(field string) string {
	return e[field]
}

// Has reports whether field failed validation.
func (e FormErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Error joins all messages in field order.
func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// CommentForm holds the public comment submission fields.
type CommentForm struct {
	Name  string `form:"name" validate:"required,max=80"`
	Email string `form:"email" validate:"required,email,max=254"`
	Body  string `form:"body" validate:"required"`
}

// CommentFormFromValues binds a submitted form, trimming surrounding whitespace.
func CommentFormFromValues(v url.Values) CommentForm {
	return CommentForm{
		Name:  strings.TrimSpace(v.Get("name")),
		Email: strings.TrimSpace(v.Get("email")),
		Body:  strings.TrimSpace(v.Get("body")),
	}
}

// Validate returns nil when the form is valid.
func (f CommentForm) Validate() FormErrors {
	return formErrors(validate.Struct(f))
}

// Comment builds an unsaved comment for the given post.
func (f CommentForm) Comment(postID int) *Comment {
	return &Comment{
		PostID: postID,
		Name:   f.Name,
		Email:  f.Email,
		Body:   f.Body,
		Active: true,
	}
}

// EmailPostForm holds the share-by-email fields.
type EmailPostForm struct {
	Name     string `form:"name" validate:"required,max=25"`
	Email    string `form:"email" validate:"required,email,max=254"`
	To       string `form:"to" validate:"required,email,max=254"`
	Comments string `form:"comments"`
}

// EmailPostFormFromValues binds a submitted form, trimming surrounding whitespace.
func EmailPostFormFromValues(v url.Values) EmailPostForm {
	return EmailPostForm{
		Name:     strings.TrimSpace(v.Get("name")),
		Email:    strings.TrimSpace(v.Get("email")),
		To:       strings.TrimSpace(v.Get("to")),
		Comments: strings.TrimSpace(v.Get("comments")),
	}
}

// Validate returns nil when the form is valid.
func (f EmailPostForm) Validate() FormErrors {
	return formErrors(validate.Struct(f))
}

func formErrors(err error) FormErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FormErrors{"__all__": err.Error()}
	}
	out := make(FormErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}
