package plans

import (
	"fmt"

	"gomeraway-api/internal/domain/billing"
)

const (
	MessageNoSubscription = "Necesitas una suscripción activa para publicar anuncios."
	MessageCheckFailed    = "No se pudo verificar el límite de anuncios. Inténtalo de nuevo."
)

// Decision is the answer of the listing-limit gate.
type Decision struct {
	CanCreate    bool   `json:"canCreate"`
	CurrentCount int    `json:"currentCount"`
	MaxAllowed   int    `json:"maxAllowed"`
	PlanName     string `json:"planName"`
	IsUnlimited  bool   `json:"isUnlimited"`
	Message      string `json:"message,omitempty"`
}

// Evaluate decides whether a user holding sub (nil when there is no row)
// may create another listing given activeCount active listings.
func Evaluate(sub *billing.Subscription, activeCount int) Decision {
	if sub == nil || !sub.IsActive() {
		return Decision{
			CanCreate:    false,
			CurrentCount: activeCount,
			MaxAllowed:   0,
			Message:      MessageNoSubscription,
		}
	}

	planName := Normalize(sub.Plan)
	max := MaxListings(planName)

	if max == Unlimited {
		return Decision{
			CanCreate:    true,
			CurrentCount: activeCount,
			MaxAllowed:   DisplayUnlimited,
			PlanName:     planName,
			IsUnlimited:  true,
		}
	}

	d := Decision{
		CanCreate:    activeCount < max,
		CurrentCount: activeCount,
		MaxAllowed:   max,
		PlanName:     planName,
	}
	if !d.CanCreate {
		d.Message = limitReachedMessage(max, planName)
	}
	return d
}

// Denied is the fail-closed decision used whenever the check itself fails.
func Denied() Decision {
	return Decision{CanCreate: false, Message: MessageCheckFailed}
}

func limitReachedMessage(max int, planName string) string {
	noun := "anuncios"
	if max == 1 {
		noun = "anuncio"
	}
	return fmt.Sprintf("Has alcanzado el límite de %d %s de tu plan %s. Mejora tu plan para publicar más.", max, noun, planName)
}
