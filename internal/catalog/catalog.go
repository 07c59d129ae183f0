// Package catalog is the compiled-in API description.
//
// API returns a fresh value on every call; callers may not share or mutate
// it. The actions here are a representative slice of the full library:
// enough to exercise every argument, optional-argument, return and field
// kind through every emitter.
package catalog

import "github.com/roach88/bindgen/internal/ir"

// Prefix is the native C naming prefix.
const Prefix = "guestfs_"

// API returns the static API.
func API() *ir.API {
	return &ir.API{
		Prefix:  Prefix,
		Actions: append(publicActions(), internalActions()...),
		Structs: structs(),
		Events:  events(),
	}
}

func events() []ir.Event {
	return []ir.Event{
		{Name: "close", Bit: 0},
		{Name: "subprocess_quit", Bit: 1},
		{Name: "launch_done", Bit: 2},
		{Name: "progress", Bit: 3},
		{Name: "appliance", Bit: 4},
		{Name: "library", Bit: 5},
		{Name: "trace", Bit: 6},
		{Name: "enter", Bit: 7},
		{Name: "libvirt_auth", Bit: 8},
		{Name: "warning", Bit: 9},
	}
}

func structs() []ir.Struct {
	i64 := func(names ...string) []ir.Field {
		fs := make([]ir.Field, len(names))
		for i, n := range names {
			fs[i] = ir.Field{Name: n, Kind: ir.FieldInt64}
		}
		return fs
	}

	return []ir.Struct{
		{Name: "stat", Fields: i64(
			"dev", "ino", "mode", "nlink", "uid", "gid", "rdev",
			"size", "blksize", "blocks", "atime", "mtime", "ctime",
		)},
		{Name: "version", Fields: append(i64("major", "minor", "release"),
			ir.Field{Name: "extra", Kind: ir.FieldString})},
		{Name: "lvm_pv", Fields: []ir.Field{
			{Name: "pv_name", Kind: ir.FieldString},
			{Name: "pv_uuid", Kind: ir.FieldUUID},
			{Name: "pv_fmt", Kind: ir.FieldString},
			{Name: "pv_size", Kind: ir.FieldBytes},
			{Name: "dev_size", Kind: ir.FieldBytes},
			{Name: "pv_free", Kind: ir.FieldBytes},
			{Name: "pv_used", Kind: ir.FieldBytes},
			{Name: "pv_attr", Kind: ir.FieldString},
			{Name: "pv_pe_count", Kind: ir.FieldInt64},
			{Name: "pv_pe_alloc_count", Kind: ir.FieldInt64},
			{Name: "pv_tags", Kind: ir.FieldString},
			{Name: "pe_start", Kind: ir.FieldBytes},
			{Name: "pv_mda_count", Kind: ir.FieldInt64},
			{Name: "pv_mda_free", Kind: ir.FieldBytes},
		}},
		{Name: "lvm_lv", Fields: []ir.Field{
			{Name: "lv_name", Kind: ir.FieldString},
			{Name: "lv_uuid", Kind: ir.FieldUUID},
			{Name: "lv_attr", Kind: ir.FieldString},
			{Name: "lv_major", Kind: ir.FieldInt64},
			{Name: "lv_minor", Kind: ir.FieldInt64},
			{Name: "lv_size", Kind: ir.FieldBytes},
			{Name: "seg_count", Kind: ir.FieldInt64},
			{Name: "origin", Kind: ir.FieldString},
			{Name: "snap_percent", Kind: ir.FieldOptPercent},
			{Name: "copy_percent", Kind: ir.FieldOptPercent},
			{Name: "move_pv", Kind: ir.FieldString},
			{Name: "lv_tags", Kind: ir.FieldString},
		}},
		{Name: "dirent", Fields: []ir.Field{
			{Name: "ino", Kind: ir.FieldInt64},
			{Name: "ftyp", Kind: ir.FieldChar},
			{Name: "name", Kind: ir.FieldString},
		}},
		{Name: "xattr", Fields: []ir.Field{
			{Name: "attrname", Kind: ir.FieldString},
			{Name: "attrval", Kind: ir.FieldBuffer},
		}},
		{Name: "partition", Fields: []ir.Field{
			{Name: "part_num", Kind: ir.FieldInt32},
			{Name: "part_start", Kind: ir.FieldUInt64},
			{Name: "part_end", Kind: ir.FieldUInt64},
			{Name: "part_size", Kind: ir.FieldUInt64},
		}},
		{Name: "inotify_event", Fields: []ir.Field{
			{Name: "in_wd", Kind: ir.FieldInt64},
			{Name: "in_mask", Kind: ir.FieldUInt32},
			{Name: "in_cookie", Kind: ir.FieldUInt32},
			{Name: "in_name", Kind: ir.FieldString},
		}},
	}
}
