// Command phyray renders a small built-in demo scene through the core
// path tracer and writes the result as a PNG. It is a smoke-test entry
// point, not an EXR-quality production renderer: the core's own contract
// ends at an in-memory image, and encoding/scene-file parsing are the
// external collaborators spec.md names.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/methusael13/phyray-go/internal/config"
	"github.com/methusael13/phyray-go/pkg/accel"
	"github.com/methusael13/phyray-go/pkg/camera"
	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/integrator"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/material"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// ImageWriter is the output-encoding boundary: the core renderer hands back
// an *image.RGBA from Film.WriteImage, and anything satisfying this writes
// it out. A real build would plug in an EXR encoder here; pngWriter below
// is only this binary's own smoke-test sink, not a spec deliverable.
type ImageWriter interface {
	Write(path string, img *image.RGBA) error
}

type pngWriter struct{}

func (pngWriter) Write(path string, img *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func main() {
	configPath := flag.String("config", "", "path to a RenderConfig file (resolution/samples/bounces)")
	output := flag.String("o", "render.png", "output PNG path")
	flag.Parse()

	cfg := config.RenderConfig{ResolutionX: 640, ResolutionY: 480, Samples: 32, Bounces: 8}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("phyray: %v", err)
		}
		if loaded.ResolutionX > 0 && loaded.ResolutionY > 0 {
			cfg.ResolutionX, cfg.ResolutionY = loaded.ResolutionX, loaded.ResolutionY
		}
		if loaded.Samples > 0 {
			cfg.Samples = loaded.Samples
		}
		if loaded.Bounces > 0 {
			cfg.Bounces = loaded.Bounces
		}
	}

	start := time.Now()
	img := render(cfg)
	fmt.Printf("rendered %dx%d in %v\n", cfg.ResolutionX, cfg.ResolutionY, time.Since(start))

	var writer ImageWriter = pngWriter{}
	if err := writer.Write(*output, img); err != nil {
		log.Fatalf("phyray: writing %s: %v", *output, err)
	}
	fmt.Printf("wrote %s\n", *output)
}

// render builds the demo scene (a plastic sphere and a matte disk floor, lit
// by one area light), runs the path tracer to completion, and returns the final
// resolved image.
func render(cfg config.RenderConfig) *image.RGBA {
	f := film.NewFilm(
		geom.Point2i{X: cfg.ResolutionX, Y: cfg.ResolutionY},
		geom.NewBounds2(geom.Point2{}, geom.Point2{X: 1, Y: 1}),
		film.NewBox(geom.Vector2{X: 0.5, Y: 0.5}),
		1,
	)

	aspect := geom.Real(cfg.ResolutionX) / geom.Real(cfg.ResolutionY)
	screen := geom.NewBounds2(geom.Point2{X: -aspect, Y: -1}, geom.Point2{X: aspect, Y: 1})
	cameraToWorld := geom.LookAt(
		geom.Point3{X: 0, Y: 2, Z: -6},
		geom.Point3{X: 0, Y: 0.5, Z: 0},
		geom.Vector3{X: 0, Y: 1, Z: 0},
	)
	cam := camera.NewPerspective(cameraToWorld, screen, 0, 1, 40, f)

	floor := shape.NewDisk(
		geom.Translate(geom.Vector3{Y: -1}).Compose(geom.RotateX(90)),
		0, 20, false,
	)
	floorPrim := primitive.NewGeometricPrimitive(floor, material.NewMatte(spectrum.New(0.5), 0), nil)

	ball := shape.NewSphere(geom.Translate(geom.Vector3{Y: 0, Z: 0}), 1, false)
	ballPrim := primitive.NewGeometricPrimitive(ball, material.NewPlastic(spectrum.New(0.6), spectrum.New(0.1), 0.05, true), nil)

	lightShape := shape.NewSphere(geom.Translate(geom.Vector3{X: 2, Y: 4, Z: -2}), 0.5, false)
	areaLight := light.NewDiffuseArea(spectrum.New(15), lightShape, false)
	lightPrim := primitive.NewGeometricPrimitive(lightShape, nil, areaLight)

	bvh := accel.Build([]primitive.Primitive{floorPrim, ballPrim, lightPrim})
	scene := integrator.NewScene(bvh, []light.Light{areaLight})

	samp := sampler.NewStratified(4, 4, true, 6, 1)
	path := integrator.NewPath(cfg.Bounces, cam, samp, f.GetSampleBounds(), 0.05, "power")
	path.Render(scene)

	return f.WriteImage()
}
