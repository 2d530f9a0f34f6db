package steps

import "strings"

// InstallPackages records packages for the single install at the end of
// the run.
type InstallPackages struct {
	Names []string
}

// Install returns a step that requests names.
func Install(names ...string) *InstallPackages {
	return &InstallPackages{Names: names}
}

// Name implements Step.
func (i *InstallPackages) Name() string {
	return "install " + strings.Join(i.Names, " ")
}

// Apply implements Step.
func (i *InstallPackages) Apply(rc *RunContext) error {
	rc.Packages.Add(i.Names...)
	return nil
}
