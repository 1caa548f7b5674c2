package render

// builtinHandlers lists every tag with a dedicated handler. Variants of one
// family share a handler and differ by presets keyed on the tag.
var builtinHandlers = map[string]Handler{
	"text":            Text,
	"heading":         Text,
	"subheading":      Text,
	"paragraph":       Text,
	"richText":        Text,
	"caption":         Text,
	"code":            Code,
	"image":           Image,
	"logo":            Image,
	"backgroundImage": Image,
	"list":            List,
	"bulletList":      List,
	"numberedList":    List,
	"checklist":       List,
	"quote":           Quote,
	"testimonial":     Quote,
	"chart":           Chart,
	"shape":           Shape,
	"button":          Button,
	"divider":         Divider,
	"icon":            Icon,
	"callout":         Callout,
	"video":           Link,
	"embed":           Link,
	"table":           Table,
	"metric":          Metric,
	"stat":            Metric,
	"timeline":        Timeline,
	"teamMember":      TeamMember,
	"swot":            SWOT,
	"progress":        Progress,
}

// genericTags are known component types drawn as labeled placeholders.
var genericTags = []string{"mindmap", "diagram", "form", "map"}

// NewDefaultRegistry returns a registry with every built-in handler and the
// generic placeholder as fallback.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(Generic)
	for tag, h := range builtinHandlers {
		r.Register(tag, h)
	}
	for _, tag := range genericTags {
		r.Register(tag, Generic)
	}
	return r
}
