package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/descent/core/vector"
)

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)

	// InverseTransform は変換を元に戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)

	// TransformVector は単一の入力ベクトルを変換する
	TransformVector(x vector.Vector) (vector.Vector, error)

	// Affine は x' = (x - shift) / scale となる shift と scale を返す
	Affine() (shift, scale vector.Vector)

	// IsFitted は学習済みかどうかを返す
	IsFitted() bool
}

// TransformerFactory は Fit のたびに新しい Transformer を作る関数
type TransformerFactory func() Transformer
