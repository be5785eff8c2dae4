package models

// Product is a CardItem plus distribution metadata
type Product struct {
	CardItem    `yaml:",inline"`
	Repository  string `json:"repository,omitempty" yaml:"repository,omitempty" validate:"omitempty,weburl"`
	NpmPackage  string `json:"npmPackage,omitempty" yaml:"npmPackage,omitempty" validate:"omitempty,weburl"`
	DockerImage string `json:"dockerImage,omitempty" yaml:"dockerImage,omitempty"`
}

// HasDistribution reports whether any repository, package or container link is set
func (p Product) HasDistribution() bool {
	return p.Repository != "" || p.NpmPackage != "" || p.DockerImage != ""
}

// ProductList wraps the ordered products of a catalog file
type ProductList struct {
	Products []Product `json:"products" yaml:"products"`
}
