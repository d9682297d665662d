package analysis

import (
	"gonum.org/v1/gonum/mat"
)

// DefaultRcond is the relative singular value cut-off used to decide the
// numerical rank of the equilibrium matrix
const DefaultRcond = 1e-10

// LeastSquaresResult holds the solution of an M·x = b least squares problem
type LeastSquaresResult struct {
	X        []float64
	Rank     int
	Residual float64 // ‖M·x - b‖₂
}

// LeastSquares solves M·x = b through the singular value decomposition of M.
// Underdetermined systems give the minimum-norm solution and overdetermined
// ones the residual-minimizing solution. Singular and non-square matrices
// are accepted; when M has no significant singular value (or the
// decomposition does not converge) x is zero.
func LeastSquares(m mat.Matrix, b mat.Vector, rcond float64) LeastSquaresResult {
	_, cols := m.Dims()
	res := LeastSquaresResult{X: make([]float64, cols)}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); ok {
		res.Rank = svd.Rank(rcond)
	}

	x := mat.NewVecDense(cols, res.X)
	if res.Rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, res.Rank)
		x.CopyVec(&sol)
	}

	var r mat.VecDense
	r.MulVec(m, x)
	r.SubVec(&r, b)
	res.Residual = mat.Norm(&r, 2)
	return res
}
