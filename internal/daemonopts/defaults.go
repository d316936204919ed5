package daemonopts

const (
	DefaultExpireSeconds = 86400
	DefaultAutoflush     = 10000
	DefaultCacheKey      = "texbridge"
	DefaultFormat        = "html5"
	DefaultWhatsIn       = "fragment"
	DefaultWhatsOut      = "fragment"
)

// DefaultPreloads lists the TeX packages and classes the daemon loads at
// startup. secureio.sty must stay in the list.
var DefaultPreloads = []string{
	"article.cls", "graphicx.sty", "latexsym.sty", "amsfonts.sty", "amsmath.sty", "amsthm.sty",
	"amstext.sty", "amssymb.sty", "eucal.sty", "[utf8]inputenc.sty", "url.sty", "hyperref.sty",
	"textcomp.sty", "longtable.sty", "multirow.sty", "booktabs.sty", "fixltx2e.sty",
	"fullpage.sty", "[table,dvipsnames]xcolor.sty", "listings.sty", "deluxetable.sty", "xspace.sty",
	"[noids]latexml.sty", "[labels]lxRDFa.sty",
	"secureio.sty",
}

// Profile describes a daemon option set with named fields. Build flattens it
// into the ordered Setup the daemon consumes.
type Profile struct {
	Expire             int
	Autoflush          int
	CacheKey           string
	NoComments         bool
	NoGraphicImages    bool
	NoPictureImages    bool
	NoParse            bool
	Format             string
	NoDefaultResources bool
	WhatsIn            string
	WhatsOut           string
	Preloads           []string
	Extra              []Option
}

// DefaultProfile returns the profile used for fragment conversion to HTML5.
func DefaultProfile() Profile {
	preloads := make([]string, len(DefaultPreloads))
	copy(preloads, DefaultPreloads)
	return Profile{
		Expire:             DefaultExpireSeconds,
		Autoflush:          DefaultAutoflush,
		CacheKey:           DefaultCacheKey,
		NoComments:         true,
		NoGraphicImages:    true,
		NoPictureImages:    true,
		NoParse:            true,
		Format:             DefaultFormat,
		NoDefaultResources: true,
		WhatsIn:            DefaultWhatsIn,
		WhatsOut:           DefaultWhatsOut,
		Preloads:           preloads,
	}
}

// Defaults returns the Setup for DefaultProfile.
func Defaults() Setup {
	return DefaultProfile().Build()
}

// Build flattens the profile. Expire and Autoflush are always emitted since
// zero is meaningful to the daemon; empty strings are skipped.
func (p Profile) Build() Setup {
	opts := make([]Option, 0, 12+len(p.Preloads)+len(p.Extra))
	opts = append(opts, Int("expire", p.Expire), Int("autoflush", p.Autoflush))
	if p.CacheKey != "" {
		opts = append(opts, Value("cache_key", p.CacheKey))
	}
	flags := []struct {
		key string
		on  bool
	}{
		{"nocomments", p.NoComments},
		{"nographicimages", p.NoGraphicImages},
		{"nopictureimages", p.NoPictureImages},
		{"noparse", p.NoParse},
	}
	for _, f := range flags {
		if f.on {
			opts = append(opts, Flag(f.key))
		}
	}
	if p.Format != "" {
		opts = append(opts, Value("format", p.Format))
	}
	if p.NoDefaultResources {
		opts = append(opts, Flag("nodefaultresources"))
	}
	if p.WhatsIn != "" {
		opts = append(opts, Value("whatsin", p.WhatsIn))
	}
	if p.WhatsOut != "" {
		opts = append(opts, Value("whatsout", p.WhatsOut))
	}
	for _, pkg := range p.Preloads {
		if pkg != "" {
			opts = append(opts, Value("preload", pkg))
		}
	}
	opts = append(opts, p.Extra...)
	return New(opts...)
}
