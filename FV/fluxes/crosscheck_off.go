//go:build !fluxcheck

package fluxes

const crossCheckEigen = false
