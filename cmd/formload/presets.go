// Form presets for common dataset layouts.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/formload/internal/engine"
	"github.com/dukaforge/formload/internal/form"
	"github.com/dukaforge/formload/pkg/types"
)

// preset is a named form builder for a well-known dataset layout.
type preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	build       func(std *types.Standard) engine.Form
}

// presets lists the built-in form presets in display order.
var presets = []preset{
	{
		Name:        "yolo",
		Description: "classes.txt, images/<name>.jpg, labels/<name>.txt rows of class and box coordinates",
		build:       yoloForm,
	},
	{
		Name:        "coco",
		Description: "annotations.json with images, categories, and annotations arrays",
		build:       cocoForm,
	},
}

// lookupPreset finds a preset by name.
func lookupPreset(name string) (preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return preset{}, false
}

// yoloForm describes a YOLO-style layout: a class list whose line number is
// the class id, an image directory, and one label file of annotation rows
// per image.
func yoloForm(std *types.Standard) engine.Form {
	row := form.NewGenericList(std.ClassID, std.XMin, std.YMin, std.XMax, std.YMax)
	return engine.Form{
		{
			Key: form.NewStatic("classes.txt"),
			Value: form.NewImpliedList(
				form.MustGeneric("{}", std.ClassName), std.ClassID, 0),
		},
		{
			Key: form.NewStatic("images"),
			Value: engine.Form{
				{Key: form.MustGeneric("{}.jpg", std.ImageName), Value: std.AbsoluteFile},
				{Key: form.MustGeneric("{}.png", std.ImageName), Value: std.AbsoluteFile},
			},
		},
		{
			Key: form.NewStatic("labels"),
			Value: engine.Form{{
				Key:   form.MustGeneric("{}.txt", std.ImageName),
				Value: form.NewGenericList(row),
			}},
		},
	}
}

// cocoForm describes a COCO-style layout: a single annotations.json whose
// images, categories, and annotations arrays join on image and class ids.
func cocoForm(std *types.Standard) engine.Form {
	return engine.Form{{
		Key: form.NewStatic("annotations.json"),
		Value: engine.Form{
			{
				Key: form.NewStatic("images"),
				Value: form.NewGenericList(engine.Form{
					{Key: form.NewStatic("id"), Value: std.ImageID},
					{Key: form.NewStatic("file_name"), Value: form.MustGeneric("{}.jpg", std.ImageName)},
				}),
			},
			{
				Key: form.NewStatic("categories"),
				Value: form.NewGenericList(engine.Form{
					{Key: form.NewStatic("id"), Value: std.ClassID},
					{Key: form.NewStatic("name"), Value: std.ClassName},
				}),
			},
			{
				Key: form.NewStatic("annotations"),
				Value: form.NewGenericList(engine.Form{
					{Key: form.NewStatic("image_id"), Value: std.ImageID},
					{Key: form.NewStatic("category_id"), Value: std.ClassID},
					{Key: form.NewStatic("xmin"), Value: std.XMin},
					{Key: form.NewStatic("ymin"), Value: std.YMin},
					{Key: form.NewStatic("xmax"), Value: std.XMax},
					{Key: form.NewStatic("ymax"), Value: std.YMax},
				}),
			},
		},
	}}
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available form presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			out, err := json.MarshalIndent(presets, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal presets: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		for _, p := range presets {
			fmt.Printf("%-8s %s\n", p.Name, p.Description)
		}
		return nil
	},
}
