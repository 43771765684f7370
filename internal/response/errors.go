package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrUserAccessOnly  ErrCode = "USER_ACCESS_ONLY"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Document-specific ─────────────────────────────────────────────
	ErrDocumentNotPublished ErrCode = "DOCUMENT_NOT_PUBLISHED"
	ErrDocumentNotDraft     ErrCode = "DOCUMENT_NOT_DRAFT"
	ErrDocumentEmpty        ErrCode = "DOCUMENT_EMPTY"
	ErrNotDocumentAuthor    ErrCode = "NOT_DOCUMENT_AUTHOR"
	ErrSectionNotFound      ErrCode = "SECTION_NOT_FOUND"
	ErrBlockNotFound        ErrCode = "BLOCK_NOT_FOUND"

	// ─── Training ──────────────────────────────────────────────────────
	ErrInvalidTrainingMode ErrCode = "INVALID_TRAINING_MODE"
	ErrInvalidLevel        ErrCode = "INVALID_LEVEL"
	ErrNothingToCheck      ErrCode = "NOTHING_TO_CHECK"

	// ─── Access tiers ──────────────────────────────────────────────────
	ErrQuotaExceeded   ErrCode = "QUOTA_EXCEEDED"
	ErrPremiumRequired ErrCode = "PREMIUM_REQUIRED"
	ErrPromoInvalid    ErrCode = "PROMO_CODE_INVALID"
	ErrPromoExhausted  ErrCode = "PROMO_CODE_EXHAUSTED"
	ErrWebhookInvalid  ErrCode = "WEBHOOK_SIGNATURE_INVALID"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Adresse e-mail ou mot de passe incorrect."
	case ErrSessionInvalidated:
		return "Votre session a expiré. Veuillez vous reconnecter."
	case ErrTokenRequired:
		return "Un jeton d'authentification est requis."
	case ErrTokenInvalid:
		return "Le jeton d'authentification est invalide."
	case ErrTokenExpired:
		return "Le jeton d'authentification a expiré."
	case ErrEmailTaken:
		return "Cette adresse e-mail est déjà utilisée."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Vous n'avez pas l'autorisation d'accéder à cette ressource."
	case ErrUserAccessOnly:
		return "Cette ressource est réservée aux utilisateurs."
	case ErrAdminAccessOnly:
		return "Cette ressource est réservée aux administrateurs."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validation a échoué. Veuillez vérifier votre saisie."
	case ErrInvalidID:
		return "Le format de l'identifiant est invalide."
	case ErrInvalidPayload:
		return "Le corps de la requête est invalide."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ressource introuvable."
	case ErrConflict:
		return "Cette ressource existe déjà."
	case ErrActionForbidden:
		return "Cette action n'est pas autorisée."

	// ─── Document-specific ─────────────────────────────────────────────
	case ErrDocumentNotPublished:
		return "Ce document n'est pas encore publié."
	case ErrDocumentNotDraft:
		return "Ce document n'est pas en statut DRAFT."
	case ErrDocumentEmpty:
		return "Ce document ne contient aucune section."
	case ErrNotDocumentAuthor:
		return "Vous n'êtes pas l'auteur de ce document."
	case ErrSectionNotFound:
		return "Section introuvable dans ce document."
	case ErrBlockNotFound:
		return "Bloc introuvable dans ce document."

	// ─── Training ──────────────────────────────────────────────────────
	case ErrInvalidTrainingMode:
		return "Le mode d'entraînement demandé est inconnu."
	case ErrInvalidLevel:
		return "Le niveau de difficulté doit être compris entre 1 et 3."
	case ErrNothingToCheck:
		return "Aucune réponse à corriger."

	// ─── Access tiers ──────────────────────────────────────────────────
	case ErrQuotaExceeded:
		return "Quota journalier atteint. Passez en Premium pour continuer."
	case ErrPremiumRequired:
		return "Cette fonctionnalité est réservée aux comptes Premium."
	case ErrPromoInvalid:
		return "Ce code promotionnel est invalide ou expiré."
	case ErrPromoExhausted:
		return "Ce code promotionnel a atteint sa limite d'utilisation."
	case ErrWebhookInvalid:
		return "La signature du webhook est invalide."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Un fichier est requis."
	case ErrUnsupportedFile:
		return "Ce type de fichier n'est pas pris en charge."
	case ErrFileTooLarge:
		return "La taille du fichier dépasse la limite autorisée."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Trop de requêtes. Veuillez réessayer plus tard."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Une erreur interne est survenue."
	default:
		return "Une erreur inattendue est survenue."
	}
}
