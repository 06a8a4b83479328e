// Package model は、ポートフォリオのデータモデル定義を提供します。
package model

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound は指定されたIDのプロジェクトが存在しない場合のエラーです。
var ErrProjectNotFound = errors.New("project not found")

// ValidationError はユーザー入力が不正な場合のエラーです。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError は新しいValidationErrorを生成します。
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// AuthorizationError は管理者セッションなしで保護された操作を行った場合や、
// ログインのパスワードが一致しない場合のエラーです。
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError は新しいAuthorizationErrorを生成します。
func NewAuthorizationError(msg string) error {
	return &AuthorizationError{Message: msg}
}

// StorageError は永続ストアの失敗をラップします。
type StorageError struct {
	Op  string // load, save or delete
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation はerrがValidationErrorかどうかを返します。
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuthorization はerrがAuthorizationErrorかどうかを返します。
func IsAuthorization(err error) bool {
	var a *AuthorizationError
	return errors.As(err, &a)
}

// IsStorage はerrがStorageErrorかどうかを返します。
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
