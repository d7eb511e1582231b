//go:build !purego && !js

package segprep

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var cvInterpolation = map[Interpolation]gocv.InterpolationFlags{
	Nearest: gocv.InterpolationNearestNeighbor,
	Cubic:   gocv.InterpolationCubic,
}

// newPlaneMat copies one channel plane into a CV_32F Mat.
func newPlaneMat(data []float32, rows, cols int) (gocv.Mat, error) {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32F)
	dst, err := m.DataPtrFloat32()
	if err != nil {
		m.Close()
		return gocv.Mat{}, fmt.Errorf("plane data: %w", err)
	}
	copy(dst, data)
	return m, nil
}

// planeData copies a CV_32F Mat out of OpenCV-owned memory.
func planeData(m gocv.Mat) ([]float32, error) {
	data, err := m.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("plane data: %w", err)
	}
	out := make([]float32, m.Rows()*m.Cols())
	copy(out, data)
	return out, nil
}

func resizePlane(src []float32, rows, cols, dstRows, dstCols int, interp Interpolation) ([]float32, error) {
	m, err := newPlaneMat(src, rows, cols)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(m, &dst, image.Pt(dstCols, dstRows), 0, 0, cvInterpolation[interp])
	return planeData(dst)
}

func flipPlane(src []float32, rows, cols int) ([]float32, error) {
	m, err := newPlaneMat(src, rows, cols)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	// flipCode 1 mirrors around the vertical axis
	gocv.Flip(m, &dst, 1)
	return planeData(dst)
}
