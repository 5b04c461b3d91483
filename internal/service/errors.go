package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("参数错误")
	ErrChannelNotFound = errors.New("频道不存在")
	ErrQueryTooShort   = errors.New("检索词至少需要2个字符")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrChannelNotFound: NotFound,
	ErrQueryTooShort:   BadRequest,
	UnExpectedError:    InternalServerError,
}
