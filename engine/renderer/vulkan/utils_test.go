package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "\x00", safeString(""))
	assert.Equal(t, "skyhook\x00", safeString("skyhook"))
	assert.Equal(t, "skyhook\x00", safeString("skyhook\x00"))

	in := []string{"a", "b\x00"}
	out := safeStrings(in)
	assert.Equal(t, []string{"a\x00", "b\x00"}, out)
	assert.Equal(t, "a", in[0])
}

func TestCString(t *testing.T) {
	buf := make([]byte, 16)
	copy(buf, "llvmpipe")
	assert.Equal(t, "llvmpipe", cString(buf))
	assert.Equal(t, "full", cString([]byte("full")))
	assert.Equal(t, "", cString([]byte{0, 'x'}))
}

func TestDeviceTypeName(t *testing.T) {
	assert.Equal(t, "discrete", deviceTypeName(vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, "integrated", deviceTypeName(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Equal(t, "cpu", deviceTypeName(vk.PhysicalDeviceTypeCpu))
	assert.Equal(t, "unknown", deviceTypeName(vk.PhysicalDeviceTypeOther))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.2.3", versionString(uint32(vk.MakeVersion(1, 2, 3))))
	assert.Equal(t, "VK_SUCCESS", resultString(vk.Success))
}
