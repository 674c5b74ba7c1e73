package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 可选携带底层错误（Err），支持 errors.Is / errors.As 透传
//
// 使用场景：
//   - Catalog 错误：LOAD_ERROR, SCHEMA_ERROR
//   - Model 错误：INSUFFICIENT_DATA
//   - Feature/Filter 错误：UNKNOWN_CATEGORY
//   - Store 错误：NOT_FOUND
type DomainError struct {
	Code    string // 错误代码（如 "LOAD_ERROR", "UNKNOWN_CATEGORY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "feature", "model"）
	Err     error  // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetDomainError 获取错误链中的第一个 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// WrapDomainError 创建携带底层错误的领域错误
func WrapDomainError(module, code, message string, err error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound        = "NOT_FOUND"         // 资源不存在
	ErrorCodeInvalidInput    = "INVALID_INPUT"     // 输入无效
	ErrorCodeLoad            = "LOAD_ERROR"        // 衣橱数据缺失或无法解析
	ErrorCodeSchema          = "SCHEMA_ERROR"      // 枚举字段取值越界（type / purpose）
	ErrorCodeInsufficient    = "INSUFFICIENT_DATA" // 某个类别没有可训练的数据
	ErrorCodeUnknownCategory = "UNKNOWN_CATEGORY"  // 编码器未见过的取值
)

// 模块名称常量
const (
	ModuleCatalog = "catalog"
	ModuleFeature = "feature"
	ModuleModel   = "model"
	ModuleFilter  = "filter"
	ModuleStore   = "store"
)

// 通用错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsLoadError 检查错误是否为 LOAD_ERROR（启动期致命）
func IsLoadError(err error) bool { return hasCode(err, ErrorCodeLoad) }

// IsSchemaError 检查错误是否为 SCHEMA_ERROR（启动期致命）
func IsSchemaError(err error) bool { return hasCode(err, ErrorCodeSchema) }

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA（启动期致命）
func IsInsufficientData(err error) bool { return hasCode(err, ErrorCodeInsufficient) }

// IsUnknownCategory 检查错误是否为 UNKNOWN_CATEGORY。
// 该错误由用户输入触发，上层应按“无匹配”处理而不是中断。
func IsUnknownCategory(err error) bool { return hasCode(err, ErrorCodeUnknownCategory) }

// NewUnknownCategoryError 构造 UNKNOWN_CATEGORY 错误
func NewUnknownCategoryError(module, attr, value string) *DomainError {
	return NewDomainError(module, ErrorCodeUnknownCategory,
		fmt.Sprintf("%s: unknown %s %q", module, attr, value))
}
