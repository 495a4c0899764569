package moderation

import (
	"fmt"
	"strings"
)

const listingRubric = `Act as a safety moderator for an online marketplace & community.
Analyze the input for policy violations.

[Context Rules]
1. ALLOW (Safe):
   - Selling kitchen knives, camping tools, lighters (dangerous goods for utility are OK).
   - Swimwear, underwear, fitness or modeling photos (human skin is OK if not pornographic).
   - Words like "Meat(고기)" or "Weed(풀)" in food/gardening context.
   - Alcohol/Tobacco listings for legal adult goods.

2. BLOCK (Unsafe):
   - Nudity (genitals, sexual acts), pornography.
   - Real violence, gore, self-harm instructions.
   - Drug trade (meth, cocaine, fentanyl), including slang used for drugs.
   - Prostitution, solicitation.`

const profileRubric = `Act as a safety moderator for user nicknames and profile names on an online marketplace.
The input is an identity string, not goods for sale.

1. ALLOW (Safe): ordinary names, hobbies, food words, harmless humor.
2. BLOCK (Unsafe): sexual or pornographic phrases, drug slang, solicitation,
   impersonation of staff ("관리자", "운영자"), violent or criminal phrases.`

// BuildRubric assembles the full instruction text sent to the
// classifier for one request. The context must already be validated.
func BuildRubric(c Context, text string, hasImage bool) string {
	var b strings.Builder
	switch c {
	case ContextProfile:
		b.WriteString(profileRubric)
	default:
		b.WriteString(listingRubric)
	}

	fmt.Fprintf(&b, "\n\nInput: %q\n", text)
	if hasImage {
		b.WriteString("[Image Attached]\n")
	} else {
		b.WriteString("[No Image]\n")
	}
	b.WriteString("\nRespond ONLY in JSON format:\n")
	b.WriteString(`{ "isSafe": boolean, "reason": "Reason in Korean" }`)
	return b.String()
}
