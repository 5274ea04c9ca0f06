package gen

var (
	// FeatureFactory generates a package-level constructor for every class
	// and standalone element.
	FeatureFactory = Feature{
		Name:        "factory",
		Stage:       Stable,
		Default:     true,
		Description: "Factory generates New<Type> constructors for every class and element of a package",
	}

	// FeatureSeeAlso records the direct subclasses of a class in its type
	// annotation, so decoders can discover them from the base type.
	FeatureSeeAlso = Feature{
		Name:        "seealso",
		Stage:       Beta,
		Default:     true,
		Description: "SeeAlso lists the direct subclasses of every class on its type annotation",
	}

	// FeatureManifest writes a msgpack manifest of the compiled outline next
	// to the generated packages.
	FeatureManifest = Feature{
		Name:        "manifest",
		Stage:       Experimental,
		Default:     false,
		Description: "Manifest writes a binary listing of generated packages, classes, enums and fields",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureFactory,
		FeatureSeeAlso,
		FeatureManifest,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features are Beta features that have been in use for a while.
	Stable
)

func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the bean compiler.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the registered feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
