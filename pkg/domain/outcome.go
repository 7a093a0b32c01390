package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation はモデル呼び出し前に検出された入力エラーです。
	ErrValidation = errors.New("validation error")
	// ErrModel は生成モデル呼び出しの失敗です。
	ErrModel = errors.New("model error")
	// ErrEmptyResult はモデルが成功応答を返したが poem が空だったことを示します。
	// ErrModel の一種として扱われます。
	ErrEmptyResult = errors.New("empty result")
)

// ErrorKind は Failure の分類です。
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindModel
	KindEmptyResult
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindModel:
		return "model"
	case KindEmptyResult:
		return "empty_result"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// IsModel は ModelError とそのサブタイプ (EmptyResult) で true を返します。
func (k ErrorKind) IsModel() bool {
	return k == KindModel || k == KindEmptyResult
}

// Failure は失敗した生成の理由です。
type Failure struct {
	Kind ErrorKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is は ErrorKind の包含関係に従って番兵エラーと照合します。
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrValidation:
		return f.Kind == KindValidation
	case ErrModel:
		return f.Kind.IsModel()
	case ErrEmptyResult:
		return f.Kind == KindEmptyResult
	}
	return false
}

// Outcome は全オペレーションが返すタグ付きの結果です。
// Failure が nil のとき Poem は空ではありません。
type Outcome struct {
	Poem    PoemResult
	Failure *Failure
}

// Success は成功結果を作ります。
func Success(poem PoemResult) Outcome {
	return Outcome{Poem: poem}
}

// Fail は失敗結果を作ります。
func Fail(kind ErrorKind, err error) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Err: err}}
}

// OK は成功かどうかを返します。
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Err は失敗時に *Failure を、成功時に nil を返します。
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}
