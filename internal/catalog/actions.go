package catalog

import "github.com/roach88/bindgen/internal/ir"

func cmd(args ...string) ir.Command { return ir.Command(args) }

func test(init ir.TestInit, kind ir.AssertKind, expect string, seq ...ir.Command) ir.Test {
	return ir.Test{
		Init:   init,
		Apply:  ir.Applicability{Kind: ir.Always},
		Assert: ir.TestAssertion{Kind: kind, Seq: seq, Expect: expect},
	}
}

func publicActions() []ir.Action {
	return []ir.Action{
		{
			Name:      "launch",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetErr)},
			ShortDesc: "launch the backend",
			LongDesc: "You should call this after configuring the handle (eg. adding drives) " +
				"but before performing any actions.\n\n" +
				"Do not call C<guestfs_launch> twice on the same handle.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.1",
		},
		{
			Name: "add_drive",
			Style: ir.Style{
				Ret:  ir.RetOf(ir.RetErr),
				Args: []ir.Arg{ir.Str(ir.Filename, "filename")},
				OptArgs: []ir.OptArg{
					{Kind: ir.OptBool, Name: "readonly"},
					{Kind: ir.OptString, Name: "format"},
					{Kind: ir.OptString, Name: "iface"},
					{Kind: ir.OptString, Name: "name"},
				},
			},
			NonCAliases: []string{"add_drive_opts"},
			FishAlias:   []string{"add"},
			ShortDesc:   "add an image to examine or modify",
			LongDesc: "This function adds a disk image called F<filename> to the handle. " +
				"It must be called before C<guestfs_launch>.\n\n" +
				"The optional C<readonly> flag forces the image to be added read-only.",
			ConfigOnly: true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.5.23",
		},
		{
			Name:      "add_libvirt_dom",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetInt), Args: []ir.Arg{ir.Pointer("virDomainPtr", "dom")}, OptArgs: []ir.OptArg{{Kind: ir.OptBool, Name: "readonly"}, {Kind: ir.OptString, Name: "iface"}, {Kind: ir.OptBool, Name: "live"}}},
			ShortDesc: "add the disk(s) from a libvirt domain",
			LongDesc: "This function adds the disk(s) attached to the libvirt domain C<dom>. " +
				"It works like C<guestfs_add_drive> called once per disk.\n\n" +
				"The number of disks added is returned.",
			ConfigOnly: true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.29.14",
		},
		{
			Name:      "version",
			Style:     ir.Style{Ret: ir.RetStructOf("version")},
			ShortDesc: "get the library version number",
			LongDesc:  "Return the libguestfs version number that the program is linked against.",
			Tests: []ir.Test{
				test(ir.InitNone, ir.AssertRun, "", cmd("version")),
			},
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.58",
		},
		{
			Name:      "set_trace",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Bool("trace")}},
			FishAlias: []string{"trace"},
			ShortDesc: "enable or disable command traces",
			LongDesc:  "If the command trace flag is set to true, each call emits a C<trace> event with its arguments.",
			Tests: []ir.Test{
				test(ir.InitNone, ir.AssertRun, "", cmd("set_trace", "false")),
			},
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.69",
		},
		{
			Name:      "get_trace",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetBool)},
			ShortDesc: "get command trace enabled flag",
			LongDesc:  "Return the command trace flag set by C<guestfs_set_trace>.",
			Tests: []ir.Test{
				test(ir.InitNone, ir.AssertResultTrue, "", cmd("set_trace", "true"), cmd("get_trace")),
			},
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.69",
		},
		{
			Name:       "get_path",
			Style:      ir.Style{Ret: ir.RetOf(ir.RetConstString)},
			ShortDesc:  "get the search path",
			LongDesc:   "Return the current search path.\n\nThis is always non-NULL.",
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.3",
		},
		{
			Name:       "get_append",
			Style:      ir.Style{Ret: ir.RetOf(ir.RetConstOptString)},
			ShortDesc:  "get the additional kernel options",
			LongDesc:   "Return the additional kernel options which are added to the appliance kernel command line.\n\nIf NULL then no options are added.",
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.26",
		},
		{
			Name:       "get_memsize",
			Style:      ir.Style{Ret: ir.RetOf(ir.RetInt)},
			ShortDesc:  "get memory allocated to the appliance",
			LongDesc:   "This gets the memory size in megabytes allocated to the appliance.",
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.55",
		},
		{
			Name:       "inspect_get_mountpoints",
			Style:      ir.Style{Ret: ir.RetOf(ir.RetHashtable), Args: []ir.Arg{ir.Str(ir.Mountable, "root")}},
			ShortDesc:  "get mountpoints of inspected operating system",
			LongDesc:   "This returns a hash of where we think the filesystems associated with this operating system should be mounted.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.5.3",
		},
		{
			Name:      "stat",
			Style:     ir.Style{Ret: ir.RetStructOf("stat"), Args: []ir.Arg{ir.Str(ir.Pathname, "path")}},
			ProcNr:    52,
			ShortDesc: "get file information",
			LongDesc:  "Returns file information for the given C<path>.\n\nThis is the same as the L<stat(2)> system call.",
			Tests: []ir.Test{{
				Init:   ir.InitISOFS,
				Apply:  ir.Applicability{Kind: ir.Always},
				Assert: ir.TestAssertion{Kind: ir.AssertResult, Seq: []ir.Command{cmd("stat", "/empty")}, Expect: "ret->size == 0"},
				Checks: []ir.StructCheck{{Field: "size", Op: "==", Value: "0"}},
			}},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.9.2",
		},
		{
			Name:      "lstatlist",
			Style:     ir.Style{Ret: ir.RetStructListOf("stat"), Args: []ir.Arg{ir.Str(ir.Pathname, "path"), ir.StrList(ir.Filename, "names")}},
			ProcNr:    204,
			ShortDesc: "lstat on multiple files",
			LongDesc: "This call allows you to perform the C<guestfs_stat> operation on multiple files, " +
				"where all files are in the directory C<path>. C<names> is the list of files from this directory.",
			Tests: []ir.Test{
				test(ir.InitISOFS, ir.AssertRun, "", cmd("lstatlist", "/", "empty known-1")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.77",
		},
		{
			Name:  "mkswap_U",
			Style: ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.GUID, "uuid"), ir.Str(ir.Device, "device")}},
			ProcNr: 132,
			DeprecatedBy: ir.Replaced("mkswap"),
			Optional:     "linuxfsuuid",
			ShortDesc:    "create a swap partition with an explicit UUID",
			LongDesc:     "Create a swap partition on C<device> with UUID C<uuid>.",
			Tests: []ir.Test{
				test(ir.InitEmpty, ir.AssertRun, "",
					cmd("part_disk", "/dev/sda", "mbr"),
					cmd("mkswap_U", "a3a61220-882b-4f61-89f4-cf24dcc7297d", "/dev/sda1")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.55",
		},
		{
			Name: "mkswap",
			Style: ir.Style{
				Ret:     ir.RetOf(ir.RetErr),
				Args:    []ir.Arg{ir.Str(ir.Device, "device")},
				OptArgs: []ir.OptArg{{Kind: ir.OptString, Name: "label"}, {Kind: ir.OptString, Name: "uuid"}},
			},
			ProcNr:      278,
			NonCAliases: []string{"mkswap_opts"},
			ShortDesc:   "create a swap partition",
			LongDesc:    "Create a Linux swap partition on C<device>.\n\nThe option arguments C<label> and C<uuid> allow you to set the label and/or UUID of the new swap partition.",
			Tests: []ir.Test{
				test(ir.InitEmpty, ir.AssertRun, "",
					cmd("part_disk", "/dev/sda", "mbr"),
					cmd("mkswap", "/dev/sda1", "label:hello")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.55",
		},
		{
			Name:      "part_disk",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.Device, "device"), ir.Str(ir.PlainString, "parttype")}},
			ProcNr:    210,
			ShortDesc: "partition whole disk with a single primary partition",
			LongDesc:  "This command is simply a combination of C<guestfs_part_init> followed by C<guestfs_part_add> to create a single primary partition covering the whole disk.",
			Tests: []ir.Test{
				test(ir.InitEmpty, ir.AssertRun, "", cmd("part_disk", "/dev/sda", "mbr")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.78",
		},
		{
			Name:      "part_list",
			Style:     ir.Style{Ret: ir.RetStructListOf("partition"), Args: []ir.Arg{ir.Str(ir.Device, "device")}},
			ProcNr:    213,
			ShortDesc: "list partitions on a device",
			LongDesc:  "This command parses the partition table on C<device> and returns the list of partitions found.",
			Tests: []ir.Test{
				test(ir.InitEmpty, ir.AssertRun, "", cmd("part_disk", "/dev/sda", "mbr"), cmd("part_list", "/dev/sda")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.78",
		},
		{
			Name:       "pvs_full",
			Style:      ir.Style{Ret: ir.RetStructListOf("lvm_pv")},
			ProcNr:     12,
			Optional:   "lvm2",
			ShortDesc:  "list the LVM physical volumes (PVs)",
			LongDesc:   "List all the physical volumes detected. This is the equivalent of the L<pvs(8)> command. The \"full\" version includes all fields.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "0.4",
		},
		{
			Name:       "lvs_full",
			Style:      ir.Style{Ret: ir.RetStructListOf("lvm_lv")},
			ProcNr:     14,
			Optional:   "lvm2",
			ShortDesc:  "list the LVM logical volumes (LVs)",
			LongDesc:   "List all the logical volumes detected. This is the equivalent of the L<lvs(8)> command. The \"full\" version includes all fields.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "0.4",
		},
		{
			Name:      "readdir",
			Style:     ir.Style{Ret: ir.RetStructListOf("dirent"), Args: []ir.Arg{ir.Str(ir.Pathname, "dir")}},
			ProcNr:    138,
			ShortDesc: "read directories entries",
			LongDesc:  "This returns the list of directory entries in directory C<dir>.\n\nAll entries in the directory are returned, including C<.> and C<..>.",
			Tests: []ir.Test{
				test(ir.InitISOFS, ir.AssertRun, "", cmd("readdir", "/")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.55",
		},
		{
			Name: "aug_defnode",
			Style: ir.Style{Ret: ir.RetOf(ir.RetInt), Args: []ir.Arg{
				ir.Str(ir.PlainString, "name"), ir.Str(ir.PlainString, "expr"), ir.OptStr("setval"),
			}},
			ProcNr:     18,
			Optional:   "augeas",
			ShortDesc:  "define an Augeas node",
			LongDesc:   "Defines a variable C<name> whose value is the result of evaluating C<expr>.\n\nIf C<expr> evaluates to an empty nodeset, a node is created, equivalent to calling C<guestfs_aug_set> C<expr>, C<setval>.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "0.7",
		},
		{
			Name:      "getxattrs",
			Style:     ir.Style{Ret: ir.RetStructListOf("xattr"), Args: []ir.Arg{ir.Str(ir.Pathname, "path")}},
			ProcNr:    141,
			Optional:  "linuxxattrs",
			ShortDesc: "list extended attributes of a file or directory",
			LongDesc:  "This call lists the extended attributes of the file or directory C<path>.",
			Tests: []ir.Test{{
				Init:   ir.InitScratchFS,
				Apply:  ir.Applicability{Kind: ir.IfAvailable, Group: "linuxacl"},
				Assert: ir.TestAssertion{Kind: ir.AssertRun, Seq: []ir.Command{cmd("getxattrs", "/")}},
			}},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.59",
		},
		{
			Name:       "inotify_read",
			Style:      ir.Style{Ret: ir.RetStructListOf("inotify_event")},
			ProcNr:     184,
			Optional:   "inotify",
			ShortDesc:  "return list of inotify events",
			LongDesc:   "Return the complete queue of events that have happened since the previous read call.",
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.66",
		},
		{
			Name:      "cat",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetString), Args: []ir.Arg{ir.Str(ir.Pathname, "path")}},
			ProcNr:    4,
			ShortDesc: "list the contents of a file",
			LongDesc:  "Return the contents of the file named C<path>.\n\nBecause, in C, this function returns a C<char *>, there is no way to differentiate between a C<\\0> character in a file and end of string. To handle binary files, use the C<guestfs_read_file> or C<guestfs_download> functions.",
			Tests: []ir.Test{
				test(ir.InitISOFS, ir.AssertResultString, "abcdef", cmd("cat", "/known-2")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "0.4",
		},
		{
			Name:      "read_file",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetBufferOut), Args: []ir.Arg{ir.Str(ir.Pathname, "path")}},
			ProcNr:    150,
			ShortDesc: "read a file",
			LongDesc:  "This calls returns the contents of the file C<path> as a buffer.\n\nUnlike C<guestfs_cat>, this function can correctly handle files that contain embedded ASCII NUL characters.",
			Tests: []ir.Test{
				test(ir.InitISOFS, ir.AssertRun, "", cmd("read_file", "/known-4")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.63",
		},
		{
			Name:      "write",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.Pathname, "path"), ir.BufferIn("content")}},
			ProcNr:    246,
			ShortDesc: "create a new file",
			LongDesc:  "This call creates a file called C<path>. The content of the file is the string C<content> (which can contain any 8 bit data).",
			Tests: []ir.Test{
				test(ir.InitScratchFS, ir.AssertResultString, "new file contents",
					cmd("write", "/write", "new file contents"), cmd("cat", "/write")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.3.14",
		},
		{
			Name: "write_file",
			Style: ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{
				ir.Str(ir.Pathname, "path"), ir.BufferIn("content"), ir.Int("size"),
			}},
			ProcNr:       44,
			DeprecatedBy: ir.Replaced("write"),
			ShortDesc:    "create a file",
			LongDesc:     "This call creates a file called C<path>. The contents of the file is the string C<content> (which can contain any 8 bit data), with length C<size>.\n\nAs a special case, if C<size> is C<0> then the length is calculated using C<strlen>, so the content is cut at the first embedded ASCII NUL.",
			Tests: []ir.Test{
				test(ir.InitScratchFS, ir.AssertResultString, "abc",
					cmd("write_file", "/write_file", "abc", "0"), cmd("cat", "/write_file")),
			},
			Blocking:            true,
			Visibility:          ir.VisibilityPublic,
			Added:               "0.8",
			LegacyNULTruncation: true,
		},
		{
			Name:      "ls",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetStringList), Args: []ir.Arg{ir.Str(ir.Pathname, "directory")}},
			ProcNr:    72,
			ShortDesc: "list the files in a directory",
			LongDesc:  "List the files in F<directory> (relative to the root directory, there is no cwd). The C<.> and C<..> entries are not returned, but hidden files are shown.",
			Tests: []ir.Test{
				test(ir.InitISOFS, ir.AssertRun, "", cmd("ls", "/")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "0.4",
		},
		{
			Name:      "available",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.StrList(ir.PlainString, "groups")}},
			ProcNr:    216,
			ShortDesc: "test availability of some parts of the API",
			LongDesc:  "This command is used to check the availability of some groups of functionality in the appliance, which not all builds of the libguestfs appliance will be able to provide.\n\nSee also C<guestfs_feature_available>.",
			Tests: []ir.Test{
				test(ir.InitNone, ir.AssertRun, "", cmd("available", "")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.0.80",
		},
		{
			Name:      "feature_available",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetBool), Args: []ir.Arg{ir.StrList(ir.PlainString, "groups")}},
			ProcNr:    398,
			ShortDesc: "test availability of some parts of the API",
			LongDesc:  "This is the same as C<guestfs_available>, but unlike that call it returns a simple true/false boolean result, instead of throwing an exception if a feature is not found.",
			Tests: []ir.Test{
				test(ir.InitNone, ir.AssertResultTrue, "", cmd("feature_available", "")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.21.26",
		},
		{
			Name:      "blockdev_getsize64",
			Style:     ir.Style{Ret: ir.RetOf(ir.RetInt64), Args: []ir.Arg{ir.Str(ir.Device, "device")}},
			ProcNr:    63,
			ShortDesc: "get total size of device in bytes",
			LongDesc:  "This returns the size of the device in bytes.\n\nSee also C<guestfs_part_list>.",
			Tests: []ir.Test{
				test(ir.InitEmpty, ir.AssertResult, "ret == INT64_C(524288000)", cmd("blockdev_getsize64", "/dev/sda")),
			},
			Blocking:   true,
			Visibility: ir.VisibilityPublic,
			Added:      "1.9.3",
		},
		{
			Name:        "upload",
			Style:       ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.FileIn, "filename"), ir.Str(ir.Pathname, "remotefilename")}},
			ProcNr:      66,
			ShortDesc:   "upload a file from the local machine",
			LongDesc:    "Upload local file F<filename> to F<remotefilename> on the filesystem.\n\nSee also C<guestfs_download>.",
			Blocking:    true,
			Cancellable: true,
			Visibility:  ir.VisibilityPublic,
			Added:       "1.0.2",
		},
		{
			Name:        "download",
			Style:       ir.Style{Ret: ir.RetOf(ir.RetErr), Args: []ir.Arg{ir.Str(ir.Pathname, "remotefilename"), ir.Str(ir.FileOut, "filename")}},
			ProcNr:      67,
			ShortDesc:   "download a file to the local machine",
			LongDesc:    "Download file F<remotefilename> and save it as F<filename> on the local machine.\n\nSee also C<guestfs_upload>, C<guestfs_cat>.",
			Blocking:    true,
			Cancellable: true,
			Visibility:  ir.VisibilityPublic,
			Added:       "1.0.2",
		},
	}
}
