// Package errors provides coded domain errors for storefront services.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"

	// Catalog errors
	CodeProductNotFound    Code = "PRODUCT_NOT_FOUND"
	CodeCatalogInvalid     Code = "CATALOG_INVALID"
	CodeFilterInvalid      Code = "FILTER_INVALID"
	CodeProductUnorderable Code = "PRODUCT_UNORDERABLE"

	// Cart errors
	CodeCartLineNotFound   Code = "CART_LINE_NOT_FOUND"
	CodeCartEmpty          Code = "CART_EMPTY"
	CodeCartInvalidLine    Code = "CART_INVALID_LINE"
	CodeCheckoutInProgress Code = "CHECKOUT_IN_PROGRESS"

	// Quiz errors
	CodeQuizIncomplete     Code = "QUIZ_INCOMPLETE"
	CodeQuizInvalidAnswer  Code = "QUIZ_INVALID_ANSWER"
	CodeQuizTooManyAnswers Code = "QUIZ_TOO_MANY_ANSWERS"

	// Payment errors
	CodePaymentInvalidAmount Code = "PAYMENT_INVALID_AMOUNT"
	CodePaymentInvalidCard   Code = "PAYMENT_INVALID_CARD"
	CodePaymentCardExpired   Code = "PAYMENT_CARD_EXPIRED"
	CodePaymentTokenInvalid  Code = "PAYMENT_TOKEN_INVALID"

	// Account errors
	CodeAccountInvalidEmail       Code = "ACCOUNT_INVALID_EMAIL"
	CodeAccountWeakPassword       Code = "ACCOUNT_WEAK_PASSWORD"
	CodeAccountEmailTaken         Code = "ACCOUNT_EMAIL_TAKEN"
	CodeAccountInvalidCredentials Code = "ACCOUNT_INVALID_CREDENTIALS"
	CodeProfileInvalid            Code = "PROFILE_INVALID"

	// Session errors
	CodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Order errors
	CodeOrderNotFound       Code = "ORDER_NOT_FOUND"
	CodeOrderTotalMismatch  Code = "ORDER_TOTAL_MISMATCH"
	CodeOrderNotCancellable Code = "ORDER_NOT_CANCELLABLE"
	CodeOrderInvalidEmail   Code = "ORDER_INVALID_EMAIL"

	// Schedule errors
	CodeDeliveryInvalid  Code = "DELIVERY_INVALID"
	CodeDeliveryNotFound Code = "DELIVERY_NOT_FOUND"
)

// Kind groups codes by how callers should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindFailedPrecondition
	KindUnauthenticated
)

// Kind maps a domain code to its reaction class.
func (c Code) Kind() Kind {
	switch c {
	// InvalidInput - validation failures, bad input
	case CodeCatalogInvalid,
		CodeFilterInvalid,
		CodeCartInvalidLine,
		CodeQuizInvalidAnswer,
		CodeQuizTooManyAnswers,
		CodePaymentInvalidAmount,
		CodePaymentInvalidCard,
		CodePaymentCardExpired,
		CodeAccountInvalidEmail,
		CodeAccountWeakPassword,
		CodeProfileInvalid,
		CodeOrderInvalidEmail,
		CodeDeliveryInvalid:
		return KindInvalidInput

	// FailedPrecondition - state doesn't allow operation
	case CodeCartEmpty,
		CodeQuizIncomplete,
		CodeProductUnorderable,
		CodeOrderTotalMismatch,
		CodeOrderNotCancellable,
		CodePaymentTokenInvalid:
		return KindFailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeProductNotFound,
		CodeCartLineNotFound,
		CodeSessionNotFound,
		CodeOrderNotFound,
		CodeDeliveryNotFound:
		return KindNotFound

	// Conflict - unique resource constraint
	case CodeConflict,
		CodeAccountEmailTaken,
		CodeCheckoutInProgress:
		return KindConflict

	case CodeAccountInvalidCredentials:
		return KindUnauthenticated

	default:
		return KindInternal
	}
}
