package vulkan

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/skyhook/engine/core"
)

// DeviceInfo describes a physical device reported by the Vulkan loader.
type DeviceInfo struct {
	Name          string
	Type          string
	APIVersion    string
	DriverVersion string
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("%s (%s, Vulkan %s, driver %s)", d.Name, d.Type, d.APIVersion, d.DriverVersion)
}

// ListDevices creates a throwaway Vulkan instance and enumerates the
// physical devices it can see. GLFW must not already be running on
// another goroutine.
func ListDevices(appName string) ([]DeviceInfo, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize glfw")
	}
	defer glfw.Terminate()

	if !glfw.VulkanSupported() {
		return nil, errors.New("vulkan loader not available")
	}

	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return nil, errors.New("GetInstanceProcAddress is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize vk")
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   safeString(appName),
		PEngineName:        safeString("Skyhook"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	if runtime.GOOS == "darwin" {
		extensions := safeStrings([]string{
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		})
		createInfo.EnabledExtensionCount = uint32(len(extensions))
		createInfo.PpEnabledExtensionNames = extensions
		createInfo.Flags |= 1
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return nil, errors.Errorf("vkCreateInstance failed with %s", resultString(res))
	}
	defer vk.DestroyInstance(instance, nil)

	if err := vk.InitInstance(instance); err != nil {
		return nil, errors.Wrap(err, "failed to load instance functions")
	}

	var count uint32
	if res := vk.EnumeratePhysicalDevices(instance, &count, nil); res != vk.Success {
		return nil, errors.Errorf("vkEnumeratePhysicalDevices failed with %s", resultString(res))
	}
	if count == 0 {
		core.LogWarn("no devices which support Vulkan were found")
		return nil, nil
	}

	physicalDevices := make([]vk.PhysicalDevice, count)
	if res := vk.EnumeratePhysicalDevices(instance, &count, physicalDevices); res != vk.Success {
		return nil, errors.Errorf("vkEnumeratePhysicalDevices failed with %s", resultString(res))
	}

	devices := make([]DeviceInfo, 0, count)
	for _, pd := range physicalDevices[:count] {
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &properties)
		properties.Deref()

		devices = append(devices, DeviceInfo{
			Name:          cString(properties.DeviceName[:]),
			Type:          deviceTypeName(properties.DeviceType),
			APIVersion:    versionString(properties.ApiVersion),
			DriverVersion: versionString(properties.DriverVersion),
		})
	}
	return devices, nil
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func versionString(v uint32) string {
	ver := vk.Version(v)
	return fmt.Sprintf("%d.%d.%d", ver.Major(), ver.Minor(), ver.Patch())
}
