package deck

import "fmt"

// Kind selects which interactive widget a slide mounts.
type Kind string

const (
	KindIntro       Kind = "intro"
	KindTimeline    Kind = "timeline"
	KindCNN         Kind = "interactive-cnn"
	KindAlexNet     Kind = "interactive-alexnet"
	KindResNet      Kind = "interactive-resnet"
	KindAttention   Kind = "interactive-attention"
	KindViT         Kind = "interactive-vit"
	KindDiffusion   Kind = "interactive-diffusion"
	KindGenImage    Kind = "interactive-gen-image"
	KindVideoSearch Kind = "interactive-video-search"
	KindEthics      Kind = "future-ethics"
	KindConclusion  Kind = "conclusion"
)

// AllKinds lists every known slide kind in deck order.
var AllKinds = []Kind{
	KindIntro,
	KindTimeline,
	KindCNN,
	KindAlexNet,
	KindResNet,
	KindAttention,
	KindViT,
	KindDiffusion,
	KindGenImage,
	KindVideoSearch,
	KindEthics,
	KindConclusion,
}

// IsBookend reports whether slides of this kind are unlocked without any
// interaction.
func (k Kind) IsBookend() bool {
	return k == KindIntro || k == KindConclusion
}

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a type tag into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Known() {
		return "", fmt.Errorf("unknown slide kind %q", s)
	}
	return k, nil
}

// Researcher is the person credited on a slide.
type Researcher struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AuthorInfo identifies the author of the presentation itself.
type AuthorInfo struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"imageUrl"`
}

// Slide is one unit of the presentation. Slides are immutable once the deck
// is built.
type Slide struct {
	ID         int         `json:"id"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle,omitempty"`
	Content    string      `json:"content"`
	Kind       Kind        `json:"type"`
	Researcher *Researcher `json:"researcher,omitempty"`
	AuthorInfo *AuthorInfo `json:"authorInfo,omitempty"`
	Image      string      `json:"image,omitempty"`
}
