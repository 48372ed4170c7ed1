package pipeline

var elementNames = map[rune]string{
	OpFollowSymlink:          "follow_symlink",
	OpQuotes:                 "quotes",
	OpOptionalQuotes:         "optional_quotes",
	OpEmailLinks:             "email_links",
	OpEncodeURIWhitespace:    "encode_uri_whitespace",
	OpEncodeURIChars:         "encode_uri_chars",
	OpBackslashesToForward:   "backslashes_to_forward",
	OpForwardToBackslashes:   "forward_to_backslashes",
	OpRemoveFileExt:          "remove_file_ext",
	OpFindReplace:            "find_replace",
	OpRegex:                  "regex",
	OpUnexpandEnvStrings:     "unexpand_env_strings",
	OpInjectDriveLabel:       "inject_drive_label",
	OpCopyNPathParts:         "copy_n_path_parts",
	OpApplyPlugin:            "apply_plugin",
	OpApplyPipelinePlugin:    "apply_pipeline_plugin",
	OpPushToStack:            "push_to_stack",
	OpPopFromStack:           "pop_from_stack",
	OpSwapStackValues:        "swap_stack_values",
	OpDuplicateStackValue:    "duplicate_stack_value",
	OpPathsSeparator:         "paths_separator",
	OpRecursiveCopy:          "recursive_copy",
	OpExecutable:             "executable",
	OpExecutableWithFilelist: "executable_with_filelist",
	OpCommandLine:            "command_line",
	OpDisplayForSelection:    "display_for_selection",
}

// ElementName returns a stable snake_case name for e's kind.
func ElementName(e Element) string {
	if name, ok := elementNames[e.Opcode()]; ok {
		return name
	}
	return "unknown"
}
