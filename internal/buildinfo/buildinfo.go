package buildinfo

const Graffiti = "     _                 \n ___| | ___  ___ _ __   __ _ \n/ __| |/ _ \\/ _ \\ '_ \\ / _` |\n\\__ \\ |  __/  __/ |_) | (_| |\n|___/_|\\___|\\___| .__/ \\__, |\n                |_|       |_|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "SLEEPQ"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

// String is the one-line form printed by the binaries.
func (b buildinfo) String() string {
	return b.Name() + ": " + b.Time() + ", " + b.Tag()
}

var Info buildinfo
