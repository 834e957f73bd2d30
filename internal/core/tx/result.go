package tx

// Result represents an action result code.
type Result int

// Result codes, organized by category the way ledger engines report them:
// tes (success), tec (checked failure while applying, state reverted),
// tef (engine failure).
const (
	TesSUCCESS Result = 0

	TecNO_AUTH            Result = 100
	TecPAIR_EXISTS        Result = 101
	TecPAIR_NOT_FOUND     Result = 102
	TecNO_ENTRY           Result = 103
	TecINSUFFICIENT_FUNDS Result = 104
	TecPARTIAL_SUPPLY     Result = 105
	TecSUPPLY_OVERFLOW    Result = 106
	TecMIN_LIQUIDITY      Result = 107
	TecPOOL_DEPLETED      Result = 108
	TecFEE_TOO_SMALL      Result = 109
	TecSLIPPAGE           Result = 110
	TecAMOUNT_TOO_LARGE   Result = 111
	TecTOKEN_MISMATCH     Result = 112

	TefINTERNAL Result = -192

	TemMALFORMED Result = -299
)

// Success reports whether the action was applied.
func (r Result) Success() bool {
	return r == TesSUCCESS
}

// String returns the canonical code name.
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecNO_AUTH:
		return "tecNO_AUTH"
	case TecPAIR_EXISTS:
		return "tecPAIR_EXISTS"
	case TecPAIR_NOT_FOUND:
		return "tecPAIR_NOT_FOUND"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecINSUFFICIENT_FUNDS:
		return "tecINSUFFICIENT_FUNDS"
	case TecPARTIAL_SUPPLY:
		return "tecPARTIAL_SUPPLY"
	case TecSUPPLY_OVERFLOW:
		return "tecSUPPLY_OVERFLOW"
	case TecMIN_LIQUIDITY:
		return "tecMIN_LIQUIDITY"
	case TecPOOL_DEPLETED:
		return "tecPOOL_DEPLETED"
	case TecFEE_TOO_SMALL:
		return "tecFEE_TOO_SMALL"
	case TecSLIPPAGE:
		return "tecSLIPPAGE"
	case TecAMOUNT_TOO_LARGE:
		return "tecAMOUNT_TOO_LARGE"
	case TecTOKEN_MISMATCH:
		return "tecTOKEN_MISMATCH"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TemMALFORMED:
		return "temMALFORMED"
	default:
		return "unknown"
	}
}

// Message returns the human-readable reason reported to the caller.
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The action was applied."
	case TecNO_AUTH:
		return "Missing required authorization."
	case TecPAIR_EXISTS:
		return "Token with symbol already exists."
	case TecPAIR_NOT_FOUND:
		return "Pair token does not exist."
	case TecNO_ENTRY:
		return "Referenced entry not found."
	case TecINSUFFICIENT_FUNDS:
		return "Insufficient funds."
	case TecPARTIAL_SUPPLY:
		return "Liquidity holder must own the entire issued supply."
	case TecSUPPLY_OVERFLOW:
		return "Issued supply would exceed the maximum supply."
	case TecMIN_LIQUIDITY:
		return "Issued supply would fall below the minimum liquidity."
	case TecPOOL_DEPLETED:
		return "A reserve would fall below its floor."
	case TecFEE_TOO_SMALL:
		return "Computed fee is below the minimum transactable size."
	case TecSLIPPAGE:
		return "available is less than expected"
	case TecAMOUNT_TOO_LARGE:
		return "amount too large"
	case TecTOKEN_MISMATCH:
		return "Token does not match the pool's reserves."
	case TefINTERNAL:
		return "Internal engine error."
	case TemMALFORMED:
		return "Malformed action."
	default:
		return "Unknown result."
	}
}
