package scriptgen

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"autovideo/internal/services"
	"autovideo/internal/template"
	"autovideo/internal/textutil"
)

// Record carries one converted video into the emitted script.
type Record struct {
	// Token is the X-padded identifier the video's assets are named by.
	Token string
	// Name is the raw video name.
	Name string
	// AudioName is the padded sound asset name.
	AudioName string
	// Compact is set when the video fits the drive-in capacity.
	Compact bool
}

// Options point the emitted script at existing plugin files and record
// prefixes. Zero-value fields fall back to the stock names for the mod.
// The JSON layout matches the script-info sidecar accepted by
// --script-info.
type Options struct {
	ESPName        string `json:"esp_name"`
	TVRecord       string `json:"tv_record"`
	PRRecord       string `json:"pr_record"`
	DriveInESPName string `json:"di_esp_name"`
}

// soundRecordPrefix names the appended sound descriptors. It follows the
// editor-ID convention of the bundled plugin templates.
const soundRecordPrefix = "VotWSN"

func (o Options) withDefaults(modName string) Options {
	if strings.TrimSpace(o.ESPName) == "" {
		o.ESPName = template.PluginFileName(modName)
	}
	if strings.TrimSpace(o.TVRecord) == "" {
		o.TVRecord = "VotWTV"
	}
	if strings.TrimSpace(o.PRRecord) == "" {
		o.PRRecord = "VotWPR"
	}
	if strings.TrimSpace(o.DriveInESPName) == "" {
		o.DriveInESPName = template.DriveInFileName(modName)
	}
	return o
}

// LoadOptions reads a script-info JSON file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, services.Wrap(
			services.ErrConfiguration,
			"scriptgen",
			"load script info",
			fmt.Sprintf("Could not read script info file %q", path),
			err,
		)
	}
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, services.Wrap(
			services.ErrConfiguration,
			"scriptgen",
			"load script info",
			fmt.Sprintf("Script info file %q is not valid JSON", path),
			err,
		)
	}
	return opts, nil
}

// FileName returns the emitted script name for a mod.
func FileName(modName string) string {
	return "VotW_" + textutil.SanitizeFileName(modName) + "_script.pas"
}

// scaffold is the static part of the emitted script. It resolves the
// target plugins and defines the per-video record procedure; Generate
// appends one AddVideo call per record.
const scaffold = `function LoadedFileByName(name: string): IInterface;
var
  i: integer;
begin
  Result := nil;
  for i := 0 to FileCount - 1 do
    if SameText(GetFileName(FileByIndex(i)), name) then begin
      Result := FileByIndex(i);
      Exit;
    end;
end;

function AddRecord(targetFile: IInterface; signature, edid: string): IInterface;
begin
  Result := Add(GroupBySignature(targetFile, signature), signature, True);
  SetElementEditValues(Result, 'EDID', edid);
end;

procedure AddVideo(videoToken, displayName, audioName: string; driveIn: boolean);
var
  rec: IInterface;
begin
  rec := AddRecord(TargetFile, 'SOUN', SoundRecordPrefix + videoToken);
  SetElementEditValues(rec, 'FNAM', 'Videos\' + audioName + '.wav');

  rec := AddRecord(TargetFile, 'ACTI', TVRecordPrefix + videoToken);
  SetElementEditValues(rec, 'FULL', displayName);
  SetElementEditValues(rec, 'MODL', 'Videos\Television\' + ModToken + '\' + videoToken + '.nif');
  SetElementEditValues(rec, 'SNAM', SoundRecordPrefix + videoToken);

  rec := AddRecord(TargetFile, 'ACTI', PRRecordPrefix + videoToken);
  SetElementEditValues(rec, 'FULL', displayName);
  SetElementEditValues(rec, 'MODL', 'Videos\Projector\' + ModToken + '\' + videoToken + '.nif');

  if driveIn then begin
    if Assigned(DriveInFile) then begin
      rec := AddRecord(DriveInFile, 'ACTI', TVRecordPrefix + videoToken + 'DI');
      SetElementEditValues(rec, 'FULL', displayName);
      SetElementEditValues(rec, 'MODL', 'Videos\DriveIn\' + ModToken + '\' + videoToken + '.nif');
      SetElementEditValues(rec, 'SNAM', SoundRecordPrefix + videoToken);
    end else
      AddMessage('Skipping drive-in records for ' + displayName + ': ' + DriveInEspName + ' is not loaded.');
  end;
end;

function Initialize: integer;
begin
  TargetFile := LoadedFileByName(TargetEspName);
  if not Assigned(TargetFile) then begin
    AddMessage('Load ' + TargetEspName + ' before running this script.');
    Result := 1;
    Exit;
  end;
  DriveInFile := LoadedFileByName(DriveInEspName);

`

// Generate renders the editor script for a batch. modToken is the X-padded
// mod identifier the mesh directories are named by.
func Generate(modName, modToken string, records []Record, opts Options) []byte {
	opts = opts.withDefaults(modName)

	var b strings.Builder
	fmt.Fprintf(&b, "unit %s;\n\n", unitName(modName))
	b.WriteString("// Generated by autovideo. Load the target plugin in xEdit and run\n")
	b.WriteString("// this script to append the video records matching the generated assets.\n\n")
	b.WriteString("const\n")
	fmt.Fprintf(&b, "  TargetEspName = %s;\n", pascalString(opts.ESPName))
	fmt.Fprintf(&b, "  DriveInEspName = %s;\n", pascalString(opts.DriveInESPName))
	fmt.Fprintf(&b, "  TVRecordPrefix = %s;\n", pascalString(opts.TVRecord))
	fmt.Fprintf(&b, "  PRRecordPrefix = %s;\n", pascalString(opts.PRRecord))
	fmt.Fprintf(&b, "  SoundRecordPrefix = %s;\n", pascalString(soundRecordPrefix))
	fmt.Fprintf(&b, "  ModToken = %s;\n\n", pascalString(modToken))
	b.WriteString("var\n  TargetFile, DriveInFile: IInterface;\n\n")
	b.WriteString(scaffold)
	for _, rec := range records {
		fmt.Fprintf(&b, "  AddVideo(%s, %s, %s, %s);\n",
			pascalString(rec.Token),
			pascalString(displayTitle(rec.Name)),
			pascalString(rec.AudioName),
			pascalBool(rec.Compact),
		)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  AddMessage('Added %d video record sets to ' + TargetEspName + '.');\n", len(records))
	b.WriteString("  Result := 0;\nend;\n\nend.\n")
	return []byte(b.String())
}

// displayTitle turns a raw video name into the in-game display name.
// Separator characters become spaces and each word is title cased.
func displayTitle(name string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return name
	}
	return cases.Title(language.Und).String(title)
}

// unitName derives a pascal unit identifier from the mod name.
func unitName(modName string) string {
	var b strings.Builder
	for _, r := range modName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "Mod"
	}
	return "VotW_" + name + "_AddVideos"
}

// pascalString quotes a value as an Object Pascal string literal.
func pascalString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func pascalBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
