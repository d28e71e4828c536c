package uc

import "errors"

// ErrClusterNotFound is returned when no registration matches a cluster name
var ErrClusterNotFound = errors.New("cluster not found")

// ErrClusterNameTaken is returned when a registration reuses an existing name
var ErrClusterNameTaken = errors.New("cluster name already registered")

// ErrClusterURITaken is returned when a registration reuses an existing connection URI
var ErrClusterURITaken = errors.New("cluster uri already registered")
