//go:build fluxcheck

package fluxes

// Built with -tags fluxcheck every decomposition is verified against the Jacobian
const crossCheckEigen = true
