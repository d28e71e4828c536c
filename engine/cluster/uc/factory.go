package uc

// Factory wires the registry repository into use cases
type Factory struct {
	repo Repository
}

// NewFactory creates a use case factory backed by repo
func NewFactory(repo Repository) *Factory {
	return &Factory{repo: repo}
}

// RegisterCluster builds the registration use case
func (f *Factory) RegisterCluster(input *RegisterClusterInput) *RegisterCluster {
	return NewRegisterCluster(f.repo, input)
}

// ListClusters builds the listing use case
func (f *Factory) ListClusters(input *ListClustersInput) *ListClusters {
	return NewListClusters(f.repo, input)
}
