package apperrors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error classification. Codes are stable and are
// returned verbatim on the API surface so clients can localize messages.
type Code string

const (
	CodeWalletNotConnected  Code = "WALLET_NOT_CONNECTED"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeIPFSUploadFailed    Code = "IPFS_UPLOAD_FAILED"
	CodeTransactionFailed   Code = "TRANSACTION_FAILED"
	CodeWalletRejected      Code = "WALLET_REJECTED"
	CodeNetworkError        Code = "NETWORK_ERROR"
	CodeSimulationFailed    Code = "SIMULATION_FAILED"
	CodeContractError       Code = "CONTRACT_ERROR"
	CodeTimeoutError        Code = "TIMEOUT_ERROR"
	CodeAccountNotFound     Code = "ACCOUNT_NOT_FOUND"
	CodeInvalidSignature    Code = "INVALID_SIGNATURE"
)

// AppError carries the code plus a human-readable message and optional details.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, keeping the cause
// reachable through errors.Unwrap. The cause's text goes into Details.
func Wrap(err error, code Code, message string) *AppError {
	appErr := &AppError{Code: code, Message: message, cause: err}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// CodeOf extracts the code from err, or empty string if err is not an AppError.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsRetryable reports whether the failure is transient and safe to retry.
// Only network failures qualify: the transaction never reached the ledger.
// Simulation and wallet rejections indicate bad input or user intent, and
// timeouts mean the outcome is unknown until re-polled.
func IsRetryable(err error) bool {
	return CodeOf(err) == CodeNetworkError
}

// IsUnknownOutcome reports whether the transaction may still confirm
// out-of-band. Callers should re-poll by hash before classifying as failed.
func IsUnknownOutcome(err error) bool {
	return CodeOf(err) == CodeTimeoutError
}
